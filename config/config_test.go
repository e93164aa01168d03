package config

import "testing"

func TestGetEnv_FallsBackToDefault(t *testing.T) {
	t.Setenv("FIXENGINE_TEST_UNSET", "")
	if got := getEnv("FIXENGINE_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("getEnv() = %q, want %q", got, "fallback")
	}
}

func TestGetEnv_PrefersSetValue(t *testing.T) {
	t.Setenv("FIXENGINE_TEST_SET", "explicit")
	if got := getEnv("FIXENGINE_TEST_SET", "fallback"); got != "explicit" {
		t.Errorf("getEnv() = %q, want %q", got, "explicit")
	}
}

func TestGetEnvAsInt_ParsesValidInt(t *testing.T) {
	t.Setenv("FIXENGINE_TEST_INT", "42")
	if got := getEnvAsInt("FIXENGINE_TEST_INT", 7); got != 42 {
		t.Errorf("getEnvAsInt() = %d, want 42", got)
	}
}

func TestGetEnvAsInt_FallsBackOnGarbage(t *testing.T) {
	t.Setenv("FIXENGINE_TEST_INT_BAD", "not-a-number")
	if got := getEnvAsInt("FIXENGINE_TEST_INT_BAD", 7); got != 7 {
		t.Errorf("getEnvAsInt() = %d, want fallback 7", got)
	}
}

func TestGetEnvAsSlice_SplitsOnSeparator(t *testing.T) {
	t.Setenv("FIXENGINE_TEST_SLICE", "a,b,c")
	got := getEnvAsSlice("FIXENGINE_TEST_SLICE", []string{"default"}, ",")
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("getEnvAsSlice() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("getEnvAsSlice()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestGetEnvAsSlice_FallsBackWhenUnset(t *testing.T) {
	got := getEnvAsSlice("FIXENGINE_TEST_SLICE_UNSET", []string{"x", "y"}, ",")
	if len(got) != 2 || got[0] != "x" || got[1] != "y" {
		t.Errorf("getEnvAsSlice() = %v, want [x y]", got)
	}
}

func TestConfig_ValidateRequiresSecretsInProduction(t *testing.T) {
	c := &Config{Environment: "production"}
	if err := c.Validate(); err == nil {
		t.Fatal("Validate() in production with no JWT secret = nil error, want an error")
	}

	c.JWT.Secret = "s3cret"
	if err := c.Validate(); err == nil {
		t.Fatal("Validate() in production with no master key = nil error, want an error")
	}

	c.Encryption.MasterKey = "k3y"
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() with required production fields set = %v, want nil", err)
	}
}

func TestConfig_ValidatePassesOutsideProduction(t *testing.T) {
	c := &Config{Environment: "development"}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() in development = %v, want nil", err)
	}
}
