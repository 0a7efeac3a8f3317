package letter

import (
	"github.com/mozillazg/go-pinyin"
)

// PinyinTable transliterates Han characters to pinyin. Characters outside the
// table romanize to themselves, so Latin names keep their own first letter.
type PinyinTable struct {
	args pinyin.Args
}

// Pinyin returns a transliteration table with tone-less readings, first reading only.
func Pinyin() *PinyinTable {
	args := pinyin.NewArgs()
	args.Style = pinyin.Normal
	args.Heteronym = false
	args.Fallback = func(r rune, _ pinyin.Args) []string {
		return []string{string(r)}
	}
	return &PinyinTable{args: args}
}

// Transliterate implements Transliterator. Runes missing from the pinyin
// dictionary are returned unchanged, before any tone or ü folding.
func (p *PinyinTable) Transliterate(r rune) (string, bool) {
	if _, ok := pinyin.PinyinDict[int(r)]; !ok {
		return string(r), true
	}
	readings := pinyin.SinglePinyin(r, p.args)
	if len(readings) == 0 || readings[0] == "" {
		return "", false
	}
	return readings[0], true
}
