// Copyright 2016, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"crypto/rand"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Severity is the audit log severity
type Severity string

// Audit severities
const (
	INFO   Severity = "INFO"
	NOTICE Severity = "NOTICE"
	WARN   Severity = "WARN"
	ERROR  Severity = "ERROR"
)

// LogContext provides the application metadata attached to every log entry
type LogContext interface {
	AppName() string
	SessionID() string
	LogRootDir() string
}

// BasicLogContext is a minimal LogContext with a lazily created session ID
type BasicLogContext struct {
	sessionID string
}

// AppName returns the application name
func (c *BasicLogContext) AppName() string {
	return "bf-scene-id"
}

// SessionID returns a session ID, creating one if needed
func (c *BasicLogContext) SessionID() string {
	if c.sessionID == "" {
		c.sessionID, _ = PsuUUID()
	}
	return c.sessionID
}

// LogRootDir returns an empty string
func (c *BasicLogContext) LogRootDir() string {
	return ""
}

var logger = logrus.New()

func contextFields(context LogContext) logrus.Fields {
	return logrus.Fields{
		"app":     context.AppName(),
		"session": context.SessionID(),
	}
}

// LogInfo logs an informational message
func LogInfo(context LogContext, message string) {
	logger.WithFields(contextFields(context)).Info(message)
}

// LogAlert logs a message that somebody should probably look at
func LogAlert(context LogContext, message string) {
	logger.WithFields(contextFields(context)).Warn(message)
}

// LogSimpleErr logs an error with its message and returns the wrapped error
// for propagation
func LogSimpleErr(context LogContext, message string, err error) error {
	logger.WithFields(contextFields(context)).WithError(err).Error(message)
	return fmt.Errorf("%s: %w", message, err)
}

// LogAuditInput is the description of an auditable action
type LogAuditInput struct {
	Actor    string
	Action   string
	Actee    string
	Message  string
	Severity Severity
}

// LogAudit logs an auditable action between an actor and an actee
func LogAudit(context LogContext, input LogAuditInput) {
	fields := contextFields(context)
	fields["actor"] = input.Actor
	fields["action"] = input.Action
	fields["actee"] = input.Actee
	fields["severity"] = input.Severity
	logger.WithFields(fields).Info(input.Message)
}

// PsuUUID generates a pseudorandom RFC 4122-shaped identifier
func PsuUUID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16]), nil
}
