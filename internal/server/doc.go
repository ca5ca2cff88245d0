// Package server wires the API handlers onto the httpd router: account
// signup/login/logout/identity, the per-user vehicle list, and the
// health/version/metrics endpoints. Handlers consume fully parsed requests
// and the collaborator interfaces from internal/domain.
package server
