// Package models defines the records persisted by the marketplace server.
package models
