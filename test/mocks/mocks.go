// test/mocks/mocks.go

// Package mocks contains generated mocks for the application's interfaces.
// To regenerate mocks, run `go generate ./test/mocks`.
package mocks

//go:generate mockgen -source=../../internal/core/ports/catalog.go -destination=catalog_client_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/inventory_source.go -destination=inventory_source_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/run_lock.go -destination=run_lock_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/sync_service.go -destination=sync_service_mock.go -package=mocks
