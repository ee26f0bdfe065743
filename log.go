// Copyright 2025 The urlendpoint authors.
// SPDX-License-Identifier: Apache-2.0

package urlendpoint

// log sends a message to the request logger.  A nil logger discards the
// message, and a panicking logger is recovered so that logging can never
// change the outcome of a request.
func (c Context) log(fn func(Logger, Fields, string), fields Fields, msg string) {
	if c.Logger == nil {
		return
	}
	defer func() { _ = recover() }()
	fn(c.Logger, fields, msg)
}

func (c Context) logInfo(fields Fields, msg string)  { c.log(Logger.Info, fields, msg) }
func (c Context) logWarn(fields Fields, msg string)  { c.log(Logger.Warn, fields, msg) }
func (c Context) logError(fields Fields, msg string) { c.log(Logger.Error, fields, msg) }

// logDebug logs only when the request has debugging enabled.
func (c Context) logDebug(fields Fields, msg string) {
	if c.IsDebug {
		c.log(Logger.Debug, fields, msg)
	}
}
