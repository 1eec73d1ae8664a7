package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10 // 64 KiB

var languageSeeds = []string{
	"",
	"void main() {}\n",
	"@name \"demo\";\nimport math;\nvoid main() { float r = sqrt(25.0); }\n",
	"@name demo;\n",
	"int sub(int a, int b) { return a - b; }\nvoid main() { sub(10); }\n",
	"int add(int a, int b) { return a + b; }\nvoid main() { add(2, \"3\"); }\n",
	"import math;\nvoid main() { sin(div(pi, 2)); }\n",
	"int x = 1\nint y = 2;\n",
	"let s: string = \"a\" + \"b\";\nlet b = !true && 1 < 2;\n",
	"int f(int n) { if (n < 2) { return n; } return f(n - 1) + f(n - 2); }\n",
	"void loop() { let i = 0; while (i < 10) { i = i + 1; } }\n",
	"import nothing;\nimport math;\nimport math;\n",
	"float g() { return 1; }\nint h() { }\n",
	"\"unterminated\n",
	"/* open comment\n",
	"let $ = 1;\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, seed := range languageSeeds {
		f.Add([]byte(seed))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.ocl файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".ocl" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte{}, src...)
	}
	return append([]byte{}, src[:maxSeedBytes]...)
}
