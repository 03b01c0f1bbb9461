package core

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
)

func TestRenderReportEmpty(t *testing.T) {
	got := RenderReport("📋 Итоги недели:", "За неделю трат не было.", nil)
	if got != "За неделю трат не было." {
		t.Fatalf("empty rows should yield the fixed message, got %q", got)
	}
	if strings.Contains(got, "Всего") {
		t.Fatalf("empty report must not contain a total: %q", got)
	}
}

func TestRenderReportSingleCategory(t *testing.T) {
	got := RenderReport("📋 Итоги недели:", "За неделю трат не было.", []CategoryAmount{
		{Category: "еда", Amount: Money{Cents: 15050}},
	})
	for _, want := range []string{"Всего: 150.50 руб.", "еда: 150.50 руб. (100.0%)"} {
		if !strings.Contains(got, want) {
			t.Fatalf("report missing %q:\n%s", want, got)
		}
	}
}

func TestRenderReportPercentagesSumToHundred(t *testing.T) {
	rows := []CategoryAmount{
		{Category: "еда", Amount: Money{Cents: 30000}},
		{Category: "транспорт", Amount: Money{Cents: 20000}},
		{Category: "жилье", Amount: Money{Cents: 10000}},
	}
	got := RenderReport("📅 Итоги месяца:", "В этом месяце трат нет.", rows)

	re := regexp.MustCompile(`\((\d+\.\d)%\)`)
	matches := re.FindAllStringSubmatch(got, -1)
	if len(matches) != len(rows) {
		t.Fatalf("expected %d percentage lines, got %d:\n%s", len(rows), len(matches), got)
	}

	var sum float64
	for _, m := range matches {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			t.Fatalf("bad percentage %q: %v", m[1], err)
		}
		sum += v
	}
	// Each line may be off by at most 0.1 due to rounding.
	if sum < 100.0-0.1*float64(len(rows)) || sum > 100.0+0.1*float64(len(rows)) {
		t.Fatalf("percentages sum to %.2f, want ~100:\n%s", sum, got)
	}
}

func TestRenderReportKeepsRowOrder(t *testing.T) {
	rows := []CategoryAmount{
		{Category: "жилье", Amount: Money{Cents: 50000}},
		{Category: "еда", Amount: Money{Cents: 2500}},
	}
	got := RenderReport("📋 Итоги недели:", "За неделю трат не было.", rows)
	if strings.Index(got, "жилье") > strings.Index(got, "еда") {
		t.Fatalf("rows must keep the given order:\n%s", got)
	}
}
