package docs

import (
	"strings"
	"testing"
)

func TestTopicsSortedAndComplete(t *testing.T) {
	topics := Topics()
	if len(topics) == 0 {
		t.Fatalf("no topics embedded")
	}
	for i := 1; i < len(topics); i++ {
		if topics[i-1] >= topics[i] {
			t.Fatalf("topics not sorted: %v", topics)
		}
	}
	for _, want := range []string{"exporting", "getting-started", "keys"} {
		found := false
		for _, got := range topics {
			if got == want {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("topic %q missing from %v", want, topics)
		}
	}
}

func TestGetNormalizesTopicName(t *testing.T) {
	body, ok := Get("  Getting-Started ")
	if !ok {
		t.Fatalf("known topic not found")
	}
	if !strings.Contains(body, "#") {
		t.Fatalf("topic body does not look like markdown:\n%s", body)
	}

	if _, ok := Get("no-such-topic"); ok {
		t.Fatalf("unknown topic reported as found")
	}
	if _, ok := Get(""); ok {
		t.Fatalf("empty topic reported as found")
	}
}
