package markdown

import "testing"

func TestRewriteCitations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		opener  string
		workdir string
		want    string
	}{
		{
			name:   "range citation with opener",
			src:    "See 【F:src/app.rs†L10-L20】 for details.",
			opener: "vscode://file",
			want:   "See [src/app.rs:10-20](vscode://filesrc/app.rs:10)  for details.",
		},
		{
			name:    "relative path resolved against workdir",
			src:     "Refer to 【F:lib/mod.rs†L5】 here.",
			opener:  "cursor://file",
			workdir: "/home/user/project",
			want:    "Refer to [lib/mod.rs:5](cursor://file/home/user/project/lib/mod.rs:5)  here.",
		},
		{
			name:   "no opener leaves marker untouched",
			src:    "Look at 【F:file.rs†L1】.",
			opener: "",
			want:   "Look at 【F:file.rs†L1】.",
		},
		{
			name:   "adjacent citations get separating space",
			src:    "【F:src/foo.rs†L24】【F:src/foo.rs†L42】",
			opener: "vscode://file",
			want:   "[src/foo.rs:24](vscode://filesrc/foo.rs:24) [src/foo.rs:42](vscode://filesrc/foo.rs:42) ",
		},
		{
			name:   "malformed marker never partially rewritten",
			src:    "broken 【F:src/app.rs†L】 marker",
			opener: "vscode://file",
			want:   "broken 【F:src/app.rs†L】 marker",
		},
		{
			name:    "absolute path not rejoined",
			src:     "【F:/src/main.rs†L42-L50】",
			opener:  "vscode://file",
			workdir: "/workspace",
			want:    "[/src/main.rs:42-50](vscode://file/src/main.rs:42) ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RewriteCitations(tt.src, tt.opener, tt.workdir)
			if got != tt.want {
				t.Fatalf("RewriteCitations:\n got %q\nwant %q", got, tt.want)
			}
		})
	}
}
