package log

// Common field names for structured logging.
const (
	FieldComponent   = "component"
	FieldOwnerID     = "owner_id"
	FieldChatID      = "chat_id"
	FieldEntryID     = "entry_id"
	FieldCategory    = "category"
	FieldAmountCents = "amount_cents"
	FieldAction      = "action"
	FieldWindow      = "window"
	FieldOperation   = "operation"
	FieldError       = "error"
)

// Components defines standard component names.
const (
	ComponentApp     = "app"
	ComponentBot     = "bot"
	ComponentSession = "session"
	ComponentStorage = "storage"
	ComponentTracker = "tracker"
	ComponentAMQP    = "amqp"
)

// Operations defines standard operation names.
const (
	OpRecord   = "record"
	OpReport   = "report"
	OpSetLimit = "set_limit"
	OpClear    = "clear"
	OpDispatch = "dispatch"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
