// Package handler is the HTTP boundary. Every endpoint answers with the
// {success, message, ...} envelope; errors never cross back into callers.
package handler

import (
	"time"

	"collegems/internal/admins"
	"collegems/internal/attendance"
	"collegems/internal/auth"
	"collegems/internal/faculty"
	"collegems/internal/media"
	"collegems/internal/reports"
	"collegems/internal/students"
	"collegems/internal/subjects"
)

// Handler bundles the services behind the REST API.
type Handler struct {
	attendance *attendance.Service
	reports    *reports.Service
	students   *students.Service
	faculty    *faculty.Service
	admins     *admins.Repository
	subjects   *subjects.Service
	creds      *auth.Credentials
	media      *media.Storage

	jwtIssuer  string
	jwtKey     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// New wires the handler.
func New(
	att *attendance.Service,
	rep *reports.Service,
	st *students.Service,
	fac *faculty.Service,
	adm *admins.Repository,
	sub *subjects.Service,
	creds *auth.Credentials,
	med *media.Storage,
	jwtIssuer, jwtKey string,
	accessTTL, refreshTTL time.Duration,
) *Handler {
	return &Handler{
		attendance: att,
		reports:    rep,
		students:   st,
		faculty:    fac,
		admins:     adm,
		subjects:   sub,
		creds:      creds,
		media:      med,
		jwtIssuer:  jwtIssuer,
		jwtKey:     jwtKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}
