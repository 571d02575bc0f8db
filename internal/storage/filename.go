package storage

import (
	"fmt"
	"hash/fnv"
	"strings"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
)

// maxNameBytes 파일명에 포함되는 키 부분의 최대 바이트 수
const maxNameBytes = 80

var filenameReplacer = strings.NewReplacer(
	"..", "--",
	"/", "-",
	"\\", "-",
	"|", "-",
	"<", "-",
	">", "-",
	":", "-",
	"\"", "-",
	"?", "-",
	"*", "-",
)

// generateFilename 키로부터 파일명을 만듭니다.
//
// 사람이 읽을 수 있는 kebab-case 이름 뒤에 원본 키의 FNV-64a 해시를 붙입니다.
// 정규화 과정에서 서로 다른 키가 같은 이름이 되더라도 해시로 구분됩니다.
func generateFilename(key string) string {
	name := truncateByBytes(sanitizeName(key), maxNameBytes)

	hasher := fnv.New64a()
	_, _ = fmt.Fprintf(hasher, "%d:%s", len(key), key)

	return fmt.Sprintf("kv-%s-%016x.json", name, hasher.Sum64())
}

func sanitizeName(s string) string {
	kebab := strcase.ToKebab(s)

	kebab = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7F {
			return '-'
		}
		return r
	}, kebab)

	return filenameReplacer.Replace(kebab)
}

// truncateByBytes UTF-8 문자 경계를 지키면서 limit 바이트 이하로 자릅니다.
func truncateByBytes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}

	var total int
	for i := 0; i < len(s); {
		_, size := utf8.DecodeRuneInString(s[i:])
		if total+size > limit {
			break
		}
		total += size
		i += size
	}

	return s[:total]
}
