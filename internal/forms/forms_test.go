package forms

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterFormValid(t *testing.T) {
	values, errs, ok := Register.Validate(url.Values{
		"username": {"alice"},
		"email":    {"alice@x.com"},
		"password": {"pw123456"},
		"role":     {"farmer"},
	})
	require.True(t, ok, "errors: %v", errs)
	assert.Equal(t, "alice", values["username"])
	assert.Empty(t, errs)
}

func TestRegisterFormMissingFields(t *testing.T) {
	_, errs, ok := Register.Validate(url.Values{})
	require.False(t, ok)
	for _, field := range []string{"username", "email", "password", "role"} {
		assert.Equal(t, "This field is required.", errs[field])
	}
}

func TestRegisterFormConstraints(t *testing.T) {
	_, errs, ok := Register.Validate(url.Values{
		"username": {"ab"},           // below min length 3
		"email":    {"not-an-email"}, // no @domain
		"password": {"short"},        // below min length 6
		"role":     {"wizard"},       // outside the fixed role set
	})
	require.False(t, ok)
	assert.Contains(t, errs["username"], "between 3 and 80")
	assert.Equal(t, "Invalid email address.", errs["email"])
	assert.Contains(t, errs["password"], "between 6 and 128")
	assert.Equal(t, "Invalid choice.", errs["role"])
}

func TestListingFormPrice(t *testing.T) {
	base := url.Values{
		"title":       {"Fresh milk"},
		"description": {"A description long enough."},
		"category":    {"milk"},
	}

	// Optional price may be absent.
	_, errs, ok := Listing.Validate(base)
	require.True(t, ok, "errors: %v", errs)

	base.Set("price", "2.5")
	_, _, ok = Listing.Validate(base)
	require.True(t, ok)

	base.Set("price", "-1")
	_, errs, ok = Listing.Validate(base)
	require.False(t, ok)
	assert.Equal(t, "Must be a non-negative number.", errs["price"])

	base.Set("price", "cheap")
	_, errs, ok = Listing.Validate(base)
	require.False(t, ok)
	assert.Equal(t, "Must be a non-negative number.", errs["price"])
}

func TestLengthBoundsCountCharactersNotBytes(t *testing.T) {
	base := url.Values{
		"title":       {"दूध"}, // 3 characters, 9 bytes; min length for title is 2
		"description": {strings.Repeat("ऊ", 1900)}, // 1900 characters, 5700 bytes; max is 2000
		"category":    {"milk"},
	}
	_, errs, ok := Listing.Validate(base)
	require.True(t, ok, "errors: %v", errs)

	base.Set("title", "ऊ") // 1 character, 3 bytes
	_, errs, ok = Listing.Validate(base)
	require.False(t, ok)
	assert.Contains(t, errs["title"], "between 2 and 200")
}

func TestValidateTrimsWhitespace(t *testing.T) {
	values, _, ok := Login.Validate(url.Values{
		"username": {"  alice  "},
		"password": {"pw123456"},
	})
	require.True(t, ok)
	assert.Equal(t, "alice", values["username"])
}

func TestValidateReturnsAllDeclaredFields(t *testing.T) {
	values, _, _ := Event.Validate(url.Values{"title": {"Workshop"}})
	for _, field := range []string{"title", "description", "date"} {
		_, present := values[field]
		assert.True(t, present, "field %s missing from values", field)
	}
}
