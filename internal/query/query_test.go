package query

import "testing"

func TestZeroValuesOmitted(t *testing.T) {
	v := New().
		Set("page_token", "").
		SetInt("page_size", 0).
		SetBool("flag", nil).
		SetList("device_ids", nil).
		Values()
	if v != nil {
		t.Fatalf("Values = %v, want nil when nothing was set", v)
	}
}

func TestSetValues(t *testing.T) {
	yes := true
	v := New().
		Set("site_id", "s-1").
		SetInt("start_time", 1700000000).
		SetBool("include_image_url", &yes).
		SetList("device_ids", []string{"a", "b", "c"}).
		Values()

	if got := v.Get("site_id"); got != "s-1" {
		t.Fatalf("site_id = %q", got)
	}
	if got := v.Get("start_time"); got != "1700000000" {
		t.Fatalf("start_time = %q", got)
	}
	if got := v.Get("include_image_url"); got != "true" {
		t.Fatalf("include_image_url = %q", got)
	}
	if got := v.Get("device_ids"); got != "a,b,c" {
		t.Fatalf("device_ids = %q, want comma-joined", got)
	}
}

func TestSetBoolFalse(t *testing.T) {
	no := false
	v := New().SetBool("armed", &no).Values()
	if got := v.Get("armed"); got != "false" {
		t.Fatalf("armed = %q, want explicit false", got)
	}
}
