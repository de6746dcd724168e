package usecase

import "testing"

func TestStartPayloadRoundTrip(t *testing.T) {
	for _, id := range []int64{0, 1, 42, 987654321} {
		payload := BuildStartPayload(id)
		got, ok := ParseStartPayload(payload)
		if !ok || got != id {
			t.Fatalf("ParseStartPayload(%q) = (%d, %v), want (%d, true)", payload, got, ok, id)
		}
	}
}

func TestParseStartPayloadRejectsGarbage(t *testing.T) {
	for _, payload := range []string{
		"",
		"get_",
		"get_abc",
		"get_-5",
		"got_7",
		"7",
		"get_7x",
		"GET_7",
	} {
		if _, ok := ParseStartPayload(payload); ok {
			t.Errorf("ParseStartPayload(%q) accepted, want rejection", payload)
		}
	}
}

func TestBuildDeepLink(t *testing.T) {
	got := BuildDeepLink("mybot", 12)
	want := "https://t.me/mybot?start=get_12"
	if got != want {
		t.Fatalf("BuildDeepLink = %q, want %q", got, want)
	}
}
