package types

const (
	ActionRabbitMQConnected       = "rabbitmq_connected"
	ActionRabbitConnectionClosed  = "rabbitmq_connection_closed"
	ActionRabbitConnectionClosing = "rabbitmq_connection_closing"
	ActionRabbitReconnected       = "rabbitmq_reconnection_success"

	ActionQuoteFare         = "quote_fare"
	ActionFindMatches       = "find_shared_matches"
	ActionCreateBooking     = "create_booking"
	ActionJoinSharedRide    = "join_shared_ride"
	ActionCancelBooking     = "cancel_booking"
	ActionGetBooking        = "get_booking"
	ActionAcceptBooking     = "accept_booking"
	ActionAdvanceStatus     = "advance_booking_status"
	ActionResolveDistance   = "resolve_distance"
	ActionPublishEvent      = "publish_booking_event"
	ActionLoadReferenceData = "load_reference_data"
	ActionHealthCheck       = "health_check"

	ActionDatabaseTransactionFailed = "database_transaction_failed"
	ActionExternalServiceFailed     = "external_service_failed"
)
