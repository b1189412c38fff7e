// Package lib groups support code that does not belong to a single
// layer: background jobs (asynq on Redis) and transactional email
// (Resend).
package lib
