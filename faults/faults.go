// Package faults maps raw platform errors to user-facing categories.
//
// The remote service reports errors as free-form message text rather than
// structured codes, so classification is substring matching against the known
// messages. Fragile by nature; the match table must track the service's wording.
package faults

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/onepay-ir/onepay-client/gateway"
	"github.com/pkg/errors"
)

// Category identifies the kind of failure presented to the user.
type Category string

const (
	CategoryConnectivity    Category = "connectivity"
	CategoryBadCredentials  Category = "bad_credentials"
	CategoryMobileTaken     Category = "mobile_taken"
	CategoryEmailTaken      Category = "email_taken"
	CategoryUnitUnavailable Category = "unit_unavailable"
	CategoryUnknown         Category = "unknown"
)

// Classification is the user-facing rendering of a raw failure.
type Classification struct {
	Category Category
	Message  string
}

// Fixed user-facing sentences for the known failure classes.
const (
	msgConnectivity    = "ارتباط با سرور برقرار نشد. لطفا اتصال شبکه یا وضعیت API را بررسی کنید."
	msgBadCredentials  = "شماره موبایل یا رمز عبور اشتباه است."
	msgMobileTaken     = "این شماره موبایل قبلا ثبت شده است."
	msgEmailTaken      = "این ایمیل قبلا ثبت شده است."
	msgUnitUnavailable = "این واحد در حال حاضر قابل رزرو نیست."
)

var errorPrefix = regexp.MustCompile(`(?i)^error:\s*`)

// Classify turns a raw failure into its user-facing classification. Transport
// failures (the request never produced an HTTP response) are connectivity
// problems. Unrecognized messages pass through with only a generic "Error:"
// prefix stripped. Classification is a pure function of the input: the same
// error always yields the same result.
func Classify(err error) Classification {
	if err == nil {
		return Classification{Category: CategoryUnknown}
	}

	var apiErr *gateway.APIError
	if !errors.As(err, &apiErr) {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return Classification{Category: CategoryConnectivity, Message: msgConnectivity}
		}
		return Classification{
			Category: CategoryUnknown,
			Message:  errorPrefix.ReplaceAllString(err.Error(), ""),
		}
	}

	raw := apiErr.Error()
	switch {
	case strings.Contains(raw, "Invalid mobile or password"):
		return Classification{Category: CategoryBadCredentials, Message: msgBadCredentials}
	case strings.Contains(raw, "Mobile already registered"):
		return Classification{Category: CategoryMobileTaken, Message: msgMobileTaken}
	case strings.Contains(raw, "Email already registered"):
		return Classification{Category: CategoryEmailTaken, Message: msgEmailTaken}
	case strings.Contains(raw, "Unit already"):
		return Classification{Category: CategoryUnitUnavailable, Message: msgUnitUnavailable}
	}

	return Classification{
		Category: CategoryUnknown,
		Message:  errorPrefix.ReplaceAllString(raw, ""),
	}
}
