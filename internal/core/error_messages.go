package core

// error_messages.go maps technical errors to user-facing messages with codes
// for support reference.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large          Patterns: "file too large", "request body too large"
//	FILE002 - Invalid CSV             Patterns: "invalid csv"
//	FILE004 - No file selected        Patterns: "no file provided"
//	FILE005 - Empty file              Patterns: "empty file"
//	FILE006 - Invalid spreadsheet     Patterns: "invalid xlsx"
//
// # Data Errors (DATA001-DATA099)
//
//	DATA001 - No data loaded          Patterns: "no data loaded"
//	DATA002 - Unsupported statistic   Patterns: "unsupported statistic"
//	DATA003 - Invalid column          Patterns: "invalid column"
//	DATA004 - Too few numeric columns Patterns: "insufficient numeric columns"
//	DATA005 - Unsupported chart       Patterns: "unsupported chart"
//	DATA006 - Nothing to plot         Patterns: "no values to plot"
//
// # Upload Errors (UPL001-UPL099)
//
//	UPL001 - System busy (uploads)    Patterns: "too many concurrent uploads"
//	UPL002 - System busy (charts)     Patterns: "too many concurrent charts"
//	UPL003 - Request cancelled        Patterns: "context canceled"
//	UPL004 - Request timeout          Patterns: "context deadline exceeded"
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Too many requests       Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when no pattern matches; the technical error is in the logs.
//
// Patterns are matched case-insensitively with strings.Contains and the
// first match wins, so specific patterns come before general ones.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// File errors
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file is empty",
			Action:  "Upload a file with a header row",
			Code:    "FILE005",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Choose a CSV or XLSX file to upload",
			Code:    "FILE004",
		},
	},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Upload a smaller extract of the data",
			Code:    "FILE001",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Upload a smaller extract of the data",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "The file could not be read as CSV",
			Action:  "Ensure the file is comma-separated with no row longer than the header",
			Code:    "FILE002",
		},
	},
	{
		pattern: "invalid xlsx",
		msg: UserMessage{
			Message: "The spreadsheet could not be read",
			Action:  "Save the workbook as .xlsx with the header in the first row of the first sheet",
			Code:    "FILE006",
		},
	},

	// Data errors
	{
		pattern: "no data loaded",
		msg: UserMessage{
			Message: "No file has been loaded",
			Action:  "Upload a file first",
			Code:    "DATA001",
		},
	},
	{
		pattern: "unsupported statistic",
		msg: UserMessage{
			Message: "This statistic is not supported",
			Action:  "Choose one of mean, std, min, max, count or median",
			Code:    "DATA002",
		},
	},
	{
		pattern: "invalid column",
		msg: UserMessage{
			Message: "Please select a valid numeric column for this chart",
			Action:  "Pick the axis columns from the numeric column list",
			Code:    "DATA003",
		},
	},
	{
		pattern: "insufficient numeric columns",
		msg: UserMessage{
			Message: "Not enough numeric columns to build a heatmap",
			Action:  "Upload a file with at least two numeric columns",
			Code:    "DATA004",
		},
	},
	{
		pattern: "unsupported chart",
		msg: UserMessage{
			Message: "This chart type is not supported",
			Action:  "Choose Histogram, Scatter Plot, KDE Plot or Heatmap",
			Code:    "DATA005",
		},
	},
	{
		pattern: "no values to plot",
		msg: UserMessage{
			Message: "The selected column has too few values to plot",
			Action:  "Choose a column with more non-empty values",
			Code:    "DATA006",
		},
	},

	// Upload errors
	{
		pattern: "too many concurrent uploads",
		msg: UserMessage{
			Message: "System is busy processing other uploads",
			Action:  "Please wait a moment and try again",
			Code:    "UPL001",
		},
	},
	{
		pattern: "too many concurrent charts",
		msg: UserMessage{
			Message: "System is busy drawing other charts",
			Action:  "Please wait a moment and try again",
			Code:    "UPL002",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "UPL003",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or try again later",
			Code:    "UPL004",
		},
	},

	// Rate limiting
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It returns the first matching pattern, or the ERR000 fallback.
//
//	msg := MapError(fmt.Errorf("%w: %q", ErrInvalidColumn, "name"))
//	// msg.Code == "DATA003"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a display string: "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than
// the ERR000 fallback. Handlers log user-facing errors at a lower level.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
