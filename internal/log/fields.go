package log

// Common attribute names so dashboards and grep lines stay stable.
const (
	FieldComponent   = "component"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldExpenseID   = "expense_id"
	FieldRecurringID = "recurring_id"
	FieldCategory    = "category"
	FieldSubcategory = "subcategory"
	FieldAmountCents = "amount_cents"
	FieldDate        = "date"
	FieldCount       = "count"
	FieldAlertLevel  = "alert_level"
	FieldFrequency   = "frequency"
	FieldFormat      = "format"
	FieldFilePath    = "file_path"
)

// Standard component names.
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentLedger    = "ledger"
	ComponentBudget    = "budget"
	ComponentRecurring = "recurring"
	ComponentStorage   = "storage"
	ComponentTaxonomy  = "taxonomy"
	ComponentExport    = "export"
	ComponentAMQP      = "amqp"
)
