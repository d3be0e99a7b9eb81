package wiki_test

import (
	"testing"

	wikiPkg "terminal-terrace/wiki-service/internal/wiki"
)

func TestNormalizeAlias(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"小写不变", "wiki1", "wiki1"},
		{"大写折叠", "Wiki1", "wiki1"},
		{"去掉空格", "Wiki 1", "wiki1"},
		{"连续空白", "wiki      1", "wiki1"},
		{"混合大小写和空白", "ab C eeSAjj", "abceesajj"},
		{"制表符和换行", "a\tb\nc", "abc"},
		{"空串", "", ""},
		{"纯空白", "   \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wikiPkg.NormalizeAlias(tt.title)
			if got != tt.want {
				t.Errorf("NormalizeAlias(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

// 规范化必须幂等，别名键再过一遍规范化不会变形
func TestNormalizeAlias_Idempotent(t *testing.T) {
	titles := []string{"Wiki 1", "ab C eeSAjj", "Hello   World", "already-normal"}

	for _, title := range titles {
		once := wikiPkg.NormalizeAlias(title)
		twice := wikiPkg.NormalizeAlias(once)
		if once != twice {
			t.Errorf("NormalizeAlias 不幂等: %q -> %q -> %q", title, once, twice)
		}
	}
}
