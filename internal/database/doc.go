// Package database provides the PostgreSQL persistence layer: connection
// pooling, embedded schema migrations, and the user/vehicle repositories.
package database
