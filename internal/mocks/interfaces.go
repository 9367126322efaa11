package mocks

//go:generate mockgen -source=../chatbot/service.go -destination=./chatbot_service_mock.go -package=mocks
//go:generate mockgen -source=../chatbot/provider.go -destination=./chatbot_provider_mock.go -package=mocks
//go:generate mockgen -source=../reminder/repository.go -destination=./reminder_repository_mock.go -package=mocks -exclude_interfaces=Repository
//go:generate mockgen -source=../reminder/service.go -destination=./reminder_service_mock.go -package=mocks
//go:generate mockgen -source=../dispatcher/dispatcher.go -destination=./dispatcher_mock.go -package=mocks
//go:generate mockgen -source=../dispatcher/cleanup.go -destination=./cleanup_mock.go -package=mocks
//go:generate mockgen -source=../user/service.go -destination=./user_service_mock.go -package=mocks

// This file contains go:generate directives for creating mocks
// The actual mock implementations are in separate files to avoid import cycles
// The event bus test double lives next to the bus in internal/events
