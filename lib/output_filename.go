package lib

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
)

func TrimExt(filename string) (baseFilename, ext string) {
	ext = filepath.Ext(filename)
	baseFilename = strings.TrimSuffix(filename, ext)
	return
}

// NextFreeFilename returns filename if nothing in dir is called that yet,
// otherwise the name after the highest numbered sibling with the same
// base and extension: capture.png, capture-1.png, capture-2.png, ...
func NextFreeFilename(dir, filename string) string {
	if _, err := os.Stat(filepath.Join(dir, filename)); err != nil {
		return filename
	}

	base, _, ext := parseIncrementFilename(filename)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return IncrementFilename(filename)
	}

	maxNum := 0
	for _, entry := range entries {
		entryBase, num, entryExt := parseIncrementFilename(entry.Name())
		if entryBase == base && entryExt == ext && num > maxNum {
			maxNum = num
		}
	}

	return fmt.Sprintf("%v-%v%v", base, maxNum+1, ext)
}

func parseIncrementFilename(filename string) (base string, num int, ext string) {
	fileExt := filepath.Ext(filename)
	filename = strings.TrimSuffix(filename, fileExt)

	if filename == "" && fileExt != "" {
		filename, fileExt = fileExt, ""
	}

	i := len(filename) - 1
	if i < 0 {
		return "", 0, ""
	}

	for ; i >= 0; i-- {
		if !unicode.IsDigit(rune(filename[i])) {
			break
		}
	}

	digits := filename[i+1:]
	filename = strings.TrimSuffix(filename[0:i+1], "-")

	if n, err := strconv.Atoi(digits); err == nil {
		num = n
	}

	return filename, num, fileExt
}

func IncrementFilename(filename string) string {
	filename, num, ext := parseIncrementFilename(filename)
	if filename == "" && ext == "" {
		return ""
	}
	num++
	return fmt.Sprintf("%v-%v%v", filename, num, ext)
}
