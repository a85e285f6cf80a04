package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestReportJSONShape(t *testing.T) {
	t.Run("skip sentinel carries only run flag and message", func(t *testing.T) {
		raw, err := json.Marshal(Skipped())
		require.NoError(t, err)
		assert.JSONEq(t, `{"validation_run":false,"message":"validation skipped - extraction was not successful"}`, string(raw))
	})

	t.Run("run report has every key", func(t *testing.T) {
		r := newReport([]Outcome{
			pass("a.b.c", SeverityError, "ok"),
			fail("a.b.d", SeverityWarning, "meh"),
			fail("a.b.e", SeverityError, "bad"),
		})
		raw, err := json.Marshal(r)
		require.NoError(t, err)

		var body map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))
		for _, key := range []string{
			"validation_run", "total_tests", "passed", "failed", "errors", "warnings",
			"all_tests_passed", "test_results", "error_details", "warning_details",
		} {
			assert.Contains(t, body, key)
		}
		assert.NotContains(t, body, "message")
		assert.EqualValues(t, 3, body["total_tests"])
		assert.EqualValues(t, 1, body["errors"])
		assert.EqualValues(t, 1, body["warnings"])
		assert.Equal(t, false, body["all_tests_passed"])

		first := body["test_results"].([]any)[0].(map[string]any)
		assert.Equal(t, map[string]any{"test": "a.b.c", "passed": true, "message": "ok", "severity": "error"}, first)

		var back Report
		require.NoError(t, json.Unmarshal(raw, &back))
		assert.Equal(t, r, back)
	})

	t.Run("empty run renders empty lists", func(t *testing.T) {
		raw, err := json.Marshal(newReport(nil))
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"test_results":[]`)
		assert.Contains(t, string(raw), `"all_tests_passed":true`)
	})
}

func TestReportYAML(t *testing.T) {
	raw, err := yaml.Marshal(Skipped())
	require.NoError(t, err)
	assert.Equal(t, "validation_run: false\nmessage: validation skipped - extraction was not successful\n", string(raw))
}

func TestLoadAllowLists(t *testing.T) {
	t.Run("replaces only the lists present", func(t *testing.T) {
		lists, err := LoadAllowLists(stringsReader("countries:\n  - Narnia\n  - nrn\n"))
		require.NoError(t, err)
		assert.True(t, lists.Countries.Contains("NARNIA"))
		assert.True(t, lists.Countries.Contains("Nrn"))
		assert.False(t, lists.Countries.Contains("USA"))
		assert.False(t, lists.States.Configured())
	})

	t.Run("states key enables the state list", func(t *testing.T) {
		lists, err := LoadAllowLists(stringsReader("states:\n  - ON\n  - Quebec\n"))
		require.NoError(t, err)
		require.True(t, lists.States.Configured())
		assert.True(t, lists.States.Contains("quebec"))
		assert.False(t, lists.States.Contains("CA"))
		assert.Equal(t, DefaultAllowLists().Countries.Len(), lists.Countries.Len())
	})

	t.Run("empty document keeps defaults", func(t *testing.T) {
		lists, err := LoadAllowLists(stringsReader(""))
		require.NoError(t, err)
		assert.Equal(t, DefaultAllowLists().Countries.Len(), lists.Countries.Len())
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		_, err := LoadAllowLists(stringsReader("countries: [unterminated"))
		assert.Error(t, err)
	})
}

func stringsReader(s string) *strings.Reader {
	return strings.NewReader(s)
}
