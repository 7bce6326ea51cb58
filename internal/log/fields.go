package log

// Common field names for structured logging.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldPartition  = "partition"
	FieldStoreKey   = "store_key"
	FieldUserID     = "user_id"
	FieldEmail      = "email"
	FieldEventID    = "event_id"
	FieldEventType  = "event_type"
	FieldOldLabel   = "old_label"
	FieldNewLabel   = "new_label"
)

// Components defines standard component names.
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentStore    = "store"
	ComponentEvents   = "events"
	ComponentTypes    = "event_types"
	ComponentIdentity = "identity"
	ComponentIdeas    = "ideas"
	ComponentFeed     = "feed"
)

// Operations defines standard operation names.
const (
	OpLoad    = "load"
	OpPersist = "persist"
	OpAdd     = "add"
	OpUpdate  = "update"
	OpDelete  = "delete"
	OpRename  = "rename"
	OpCascade = "cascade"
	OpSignUp  = "sign_up"
	OpLogIn   = "log_in"
	OpPublish = "publish"
)
