package words

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"shadow-signal-be/internal/service/game"
)

//go:embed words.json
var defaultWords []byte

var ErrEmpty = errors.New("words: no usable entries")

type Entry struct {
	Word    string   `json:"word"`
	Similar []string `json:"similar"`
}

type Domain struct {
	Name  string  `json:"name"`
	Words []Entry `json:"words"`
}

type dataset struct {
	Domains []Domain `json:"domains"`
}

// Source 先随机选领域，再在领域内随机选词条
type Source struct {
	domains []Domain
}

func Default() *Source {
	src, err := Parse(defaultWords)
	if err != nil {
		panic(fmt.Errorf("内置词库解析失败: %w", err))
	}

	return src
}

// Load 从文件加载词库，path 为空时使用内置词库
func Load(path string) (*Source, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取词库文件失败: %w", err)
	}

	return Parse(data)
}

// Parse 解析词库，丢弃空词条和空领域
func Parse(data []byte) (*Source, error) {
	var ds dataset

	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("解析词库失败: %w", err)
	}

	domains := make([]Domain, 0, len(ds.Domains))
	for _, d := range ds.Domains {
		entries := make([]Entry, 0, len(d.Words))
		for _, e := range d.Words {
			if e.Word = strings.TrimSpace(e.Word); e.Word != "" {
				entries = append(entries, e)
			}
		}

		if len(entries) > 0 {
			domains = append(domains, Domain{Name: d.Name, Words: entries})
		}
	}

	if len(domains) == 0 {
		return nil, ErrEmpty
	}

	return &Source{domains: domains}, nil
}

func (s *Source) Pick(rng game.Rand) (game.WordEntry, error) {
	if s == nil || len(s.domains) == 0 {
		return game.WordEntry{}, ErrEmpty
	}

	domain := s.domains[rng.IntN(len(s.domains))]
	entry := domain.Words[rng.IntN(len(domain.Words))]

	return game.WordEntry{
		Word:    entry.Word,
		Similar: append([]string(nil), entry.Similar...),
	}, nil
}

func (s *Source) Len() int {
	n := 0
	for _, d := range s.domains {
		n += len(d.Words)
	}

	return n
}
