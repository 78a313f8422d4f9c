package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "student"
	RoleAdmin   RoleType = "admin"
	RoleFaculty RoleType = "faculty"
)

// BookType defines what kind of listing a book is
type BookType string

const (
	BookTypeSell     BookType = "sell"
	BookTypeBuy      BookType = "buy"
	BookTypeExchange BookType = "exchange"
	BookTypeRent     BookType = "rent"
)

// BookCondition defines the physical condition of a listed book
type BookCondition string

const (
	ConditionNew     BookCondition = "New"
	ConditionLikeNew BookCondition = "Like New"
	ConditionGood    BookCondition = "Good"
	ConditionFair    BookCondition = "Fair"
	ConditionPoor    BookCondition = "Poor"
)

// EventCategory defines the category of a campus event
type EventCategory string

const (
	CategoryAcademic EventCategory = "Academic"
	CategorySocial   EventCategory = "Social"
	CategorySports   EventCategory = "Sports"
	CategoryTech     EventCategory = "Tech"
	CategoryCultural EventCategory = "Cultural"
	CategoryOther    EventCategory = "Other"
)

// ChatType defines whether a chat is a direct pairing or a group
type ChatType string

const (
	ChatTypeDirect ChatType = "direct"
	ChatTypeGroup  ChatType = "group"
)

// MessageType defines the kind of content a message carries
type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
	MessageTypeFile  MessageType = "file"
)

// TransactionType defines the kind of exchange a transaction represents
type TransactionType string

const (
	TransactionSale     TransactionType = "sale"
	TransactionRental   TransactionType = "rental"
	TransactionExchange TransactionType = "exchange"
)

// TransactionStatus defines the lifecycle state of a transaction
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusConfirmed TransactionStatus = "confirmed"
	StatusCompleted TransactionStatus = "completed"
	StatusCancelled TransactionStatus = "cancelled"
)

// NotificationType defines the kind of notification
type NotificationType string

const (
	NotificationMessage      NotificationType = "message"
	NotificationEvent        NotificationType = "event"
	NotificationTransaction  NotificationType = "transaction"
	NotificationAnnouncement NotificationType = "announcement"
	NotificationSecurity     NotificationType = "security"
)

// ReportStatus defines the moderation state of a content report
type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportReviewed  ReportStatus = "reviewed"
	ReportResolved  ReportStatus = "resolved"
	ReportDismissed ReportStatus = "dismissed"
)
