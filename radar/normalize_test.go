package radar

import (
	"testing"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"React", "react"},
		{" REACT ", "react"},
		{"React!", "react"},
		{"React.js", "react"},
		// suffixes strip in dotless form too
		{"ReactJS", "react"},
		{"NodeJS", "node"},
		{"SocketIO", "socket"},
		{"Socket.IO", "socket"},
		{"ASP.NET", "asp"},
		{"Apache  Kafka", "apache kafka"},
		{"C++", "c"},
		{"Node.js", "node"},
		{"  ", ""},
		{"", ""},
		{"F#", "f"},
		{"vue-router", "vuerouter"},
		{"Micro frontends", "micro frontends"},
		// only one trailing suffix is stripped
		{"foo.js.js", "foojs"},
		// suffix only stripped at the end
		{"js.framework", "jsframework"},
	}
	for _, tc := range tests {
		got := normalizeName(tc.in, DefaultStripSuffixes)
		if got != tc.want {
			t.Errorf("normalizeName(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestNormalizeNameCustomSuffixes(t *testing.T) {
	got := normalizeName("thing.dev", []string{".dev"})
	if got != "thing" {
		t.Errorf("expected 'thing', got %q", got)
	}
	// default list doesn't strip .dev
	got = normalizeName("thing.dev", DefaultStripSuffixes)
	if got != "thingdev" {
		t.Errorf("expected 'thingdev', got %q", got)
	}
}
