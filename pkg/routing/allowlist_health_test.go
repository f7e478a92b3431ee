package routing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllowlist_LoadsAndHasCriticalRules(t *testing.T) {
	serverRules, err := LoadAllowlist("", "server")
	require.NoError(t, err)
	require.NotEmpty(t, serverRules)

	requireAllowlistRule(t, serverRules, "/registry/api", RouteClassInternalAPI)
	requireAllowlistRule(t, serverRules, "/health", RouteClassOps)
	requireAllowlistRule(t, serverRules, "/metrics", RouteClassOps)
}

func TestClassifier_RegistryPaths(t *testing.T) {
	rules, err := LoadAllowlist("", "server")
	require.NoError(t, err)

	classifier := NewClassifier(rules)

	require.Equal(t, RouteClassInternalAPI, classifier.ClassifyPath("/registry/api/entities"))
	require.Equal(t, RouteClassInternalAPI, classifier.ClassifyPath("/registry/api/entities/91000000001"))
	require.Equal(t, RouteClassOps, classifier.ClassifyPath("/health"))
	require.Equal(t, RouteClassOps, classifier.ClassifyPath("/metrics"))
	require.Equal(t, RouteClassUI, classifier.ClassifyPath("/"))

	require.True(t, classifier.IsAPI("/registry/api/tree"))
	require.False(t, classifier.IsAPI("/registrations"))
}

func TestHasPathPrefixOnBoundary(t *testing.T) {
	require.True(t, HasPathPrefixOnBoundary("/registry/api", "/registry/api"))
	require.True(t, HasPathPrefixOnBoundary("/registry/api/groups", "/registry/api"))
	require.False(t, HasPathPrefixOnBoundary("/registry/apiary", "/registry/api"))
	require.False(t, HasPathPrefixOnBoundary("/registry", "/registry/api"))
	require.True(t, HasPathPrefixOnBoundary("/anything", "/"))
	require.False(t, HasPathPrefixOnBoundary("/anything", ""))
}

func requireAllowlistRule(t *testing.T, rules []AllowlistRule, prefix string, class RouteClass) {
	t.Helper()

	for _, rule := range rules {
		if rule.Prefix == prefix && rule.Class == class {
			return
		}
	}
	t.Fatalf("allowlist missing rule: %q -> %q", prefix, class)
}
