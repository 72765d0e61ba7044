package game

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strings"
)

// WordPicker yields the word for a turn. Draws are independent, so immediate
// repeats are possible.
type WordPicker interface {
	Pick() string
}

type wordList struct {
	words []string
}

func NewWordList(words []string) *wordList {
	return &wordList{words: words}
}

func (wl *wordList) Pick() string {
	return wl.words[rand.Intn(len(wl.words))]
}

// LoadWords reads a word list file, one word per line, skipping blanks.
func LoadWords(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("could not open words file %s: %w", filePath, err)
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error while reading words file %s: %w", filePath, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("words file %s is empty", filePath)
	}
	return words, nil
}
