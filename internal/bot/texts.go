package bot

// Fixed command surface and replies. The button labels and the /clean
// command are load-bearing: existing users' keyboards send these exact
// strings, so they must not change.
const (
	buttonNewEntry      = "➕ Новый расход"
	buttonWeeklyReport  = "📋 Отчет неделя"
	buttonMonthlyReport = "📅 Отчет месяц"
	buttonLimit         = "🎯 Лимит"

	commandStart = "start"
	commandClean = "clean"

	greetingText = "Добро пожаловать! 💰\n\n" +
		"Этот помощник отслеживает твои расходы:\n\n" +
		"➕ Новый расход - добавить трату\n" +
		"📋 Отчет неделя - статистика 7 дней\n" +
		"📅 Отчет месяц - траты за месяц\n" +
		"🎯 Лимит - установить бюджет\n\n" +
		"Начни с добавления расхода!"

	pickCategoryText   = "Выбери категорию:"
	askCostText        = "Сколько потратил?"
	askNotesText       = "Добавь комментарий (или 'нет'):"
	badCostText        = "Введи нормальную сумму:"
	askLimitText       = "Введи месячный лимит:"
	badLimitText       = "Нужно число больше нуля:"
	saveFailedText     = "⚠️ Не получилось сохранить, попробуй ещё раз:"
	clearedText        = "✅ Данные очищены!"
	clearFailedText    = "⚠️ Не получилось очистить данные, попробуй ещё раз."
	reportFailedText   = "⚠️ Не получилось построить отчет, попробуй ещё раз."
	weeklyReportTitle  = "📋 Итоги недели:"
	weeklyReportEmpty  = "За неделю трат не было."
	monthlyReportTitle = "📅 Итоги месяца:"
	monthlyReportEmpty = "В этом месяце трат нет."

	recordedTextFmt = "✅ Записано!\nКатегория: %s\nСумма: %s руб.\nЗаметка: %s"
	limitSetTextFmt = "✅ Лимит %s руб. установлен"

	// Replying "нет" to the note prompt stores the fixed placeholder.
	noNoteWord = "нет"
)

// callbackCategoryPrefix tags category-picker payloads.
const callbackCategoryPrefix = "type_"

// categoryButton pairs an inline button label with the stored category name.
type categoryButton struct {
	Label    string
	Category string
}

// categories is the fixed picker set, in display order.
var categories = []categoryButton{
	{"🍕 Еда", "еда"},
	{"🚕 Такси", "транспорт"},
	{"🏠 Квартира", "жилье"},
	{"👖 Одежда", "одежда"},
	{"💊 Аптека", "здоровье"},
	{"🎬 Кино", "развлечения"},
}
