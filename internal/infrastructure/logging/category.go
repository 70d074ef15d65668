package logging

type Category string
type SubCategory string
type ExtraKey string

const (
	General         Category = "General"
	IO              Category = "IO"
	Internal        Category = "Internal"
	Lobby           Category = "Lobby"
	Validation      Category = "Validation"
	RequestResponse Category = "RequestResponse"
	Prometheus      Category = "Prometheus"
	Websocket       Category = "Websocket"
)

const (
	// General
	Startup         SubCategory = "Startup"
	Shutdown        SubCategory = "Shutdown"
	RateLimiting    SubCategory = "RateLimiting"
	ExternalService SubCategory = "ExternalService"
	Api             SubCategory = "Api"

	// Lobby
	Identity  SubCategory = "Identity"
	Rooms     SubCategory = "Rooms"
	Messaging SubCategory = "Messaging"
	Clipboard SubCategory = "Clipboard"
	Toasts    SubCategory = "Toasts"
	Storage   SubCategory = "Storage"

	// Websocket
	Connection SubCategory = "Connection"
	Broadcast  SubCategory = "Broadcast"

	// Terminal front end
	Terminal SubCategory = "Terminal"
)

const (
	AppName      ExtraKey = "AppName"
	LoggerName   ExtraKey = "Logger"
	ClientIp     ExtraKey = "ClientIp"
	Method       ExtraKey = "Method"
	StatusCode   ExtraKey = "StatusCode"
	BodySize     ExtraKey = "BodySize"
	Path         ExtraKey = "Path"
	Latency      ExtraKey = "Latency"
	ErrorMessage ExtraKey = "ErrorMessage"
	RoomID       ExtraKey = "RoomId"
	RoomCode     ExtraKey = "RoomCode"
	UserID       ExtraKey = "UserId"
	Severity     ExtraKey = "Severity"
	ClientID     ExtraKey = "ClientId"
	EventType    ExtraKey = "EventType"
	Origin       ExtraKey = "Origin"
)
