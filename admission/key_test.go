package admission

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildStorageKey(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 53, 589793238, time.UTC)

	key := BuildStorageKey("jane.doe+tests@mail.com", "cs_test_123", now)

	assert.Equal(t, "2025-03-14T09-26-53-589793238Z__jane_doe_tests_mail_com__cs_test_123.pdf", key)
}

func TestBuildStorageKeySanitizesEveryNonAlphanumeric(t *testing.T) {
	key := BuildStorageKey("a!b@c#d$e%f^g&h*i(j)k", "cs_x", time.Now())

	parts := strings.Split(key, "__")
	if assert.Len(t, parts, 3) {
		assert.Equal(t, "a_b_c_d_e_f_g_h_i_j_k", parts[1])
	}
}

func TestBuildStorageKeyTruncatesEmail(t *testing.T) {
	long := strings.Repeat("a", 45) + "@" + strings.Repeat("b", 45) + ".com"

	key := BuildStorageKey(long, "cs_x", time.Now())

	parts := strings.Split(key, "__")
	if assert.Len(t, parts, 3) {
		assert.Len(t, parts[1], 60)
	}
}

func TestBuildStorageKeyShape(t *testing.T) {
	key := BuildStorageKey("buyer@example.com", "cs_test_abc", time.Now())

	shape := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}-\d{2}-\d{2}-\d{9}Z__[A-Za-z0-9_]{1,60}__cs_test_abc\.pdf$`)
	assert.Regexp(t, shape, key)
}

func TestBuildStorageKeyNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, loc)

	key := BuildStorageKey("x@y.z", "cs", now)

	assert.True(t, strings.HasPrefix(key, "2025-03-14T09-00-00-000000000Z__"), key)
}

func TestBuildStorageKeysDifferForConcurrentAttempts(t *testing.T) {
	base := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	a := BuildStorageKey("x@y.z", "cs_same", base)
	b := BuildStorageKey("x@y.z", "cs_same", base.Add(time.Microsecond))

	assert.NotEqual(t, a, b)
}
