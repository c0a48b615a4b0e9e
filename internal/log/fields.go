package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldOperation  = "operation"
	FieldError      = "error"
	FieldMonth      = "month"
	FieldEntity     = "entity"
	FieldEntityID   = "entity_id"
	FieldCardID     = "card_id"
	FieldCategoryID = "category_id"
	FieldGoalID     = "goal_id"
	FieldAmount     = "amount"
	FieldBackend    = "backend"
	FieldPath       = "path"
	FieldExchange   = "exchange"
	FieldQueue      = "queue"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentStore   = "store"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
)

// Operations defines standard operation names
const (
	OpAdd     = "add"
	OpUpdate  = "update"
	OpDelete  = "delete"
	OpSet     = "set"
	OpLoad    = "load"
	OpSave    = "save"
	OpPublish = "publish"
	OpConsume = "consume"
	OpStartup = "startup"
)
