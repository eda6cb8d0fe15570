package unbounded

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strconv"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// InputSource feeds keypresses to a game. NextKey blocks until a key is
// available and returns false once the input is exhausted.
type InputSource interface {
	NextKey() (rune, bool)
}

// StringInput replays a fixed string of keys
type StringInput struct {
	keys []rune
	pos  int
}

// NewStringInput makes an input that types out s
func NewStringInput(s string) *StringInput {
	return &StringInput{keys: []rune(s)}
}

// NextKey returns the next key in the string
func (s *StringInput) NextKey() (rune, bool) {
	if s.pos >= len(s.keys) {
		return 0, false
	}
	key := s.keys[s.pos]
	s.pos++
	return key, true
}

// PeekKey returns the next key without consuming it
func (s *StringInput) PeekKey() (rune, bool) {
	if s.pos >= len(s.keys) {
		return 0, false
	}
	return s.keys[s.pos], true
}

type inputEvent struct {
	inputString string
	err         error
}

const (
	sOUTOFSEQUENCE = iota
	sINESCAPE
	sDIRECTIVE
)

var errInputGone = errors.New("input ended")

// sleepThenReport is a timeout sequence so that if the escape key is pressed it will register
// as a keypress within a reasonable period of time with the input loop, even if the input
// state machine is in its "inside ESCAPE press listening for extended sequence" state.
func sleepThenReport(stringChannel chan<- inputEvent, myOnce *sync.Once, state *int, mu *sync.Mutex) {
	time.Sleep(100 * time.Millisecond)

	myOnce.Do(func() {
		mu.Lock()
		*state = sOUTOFSEQUENCE
		mu.Unlock()
		stringChannel <- inputEvent{"ESCAPE", nil}
	})
}

func handleKeys(ctx context.Context, reader *bufio.Reader, stringChannel chan<- inputEvent, cancel context.CancelFunc) {
	var mu sync.Mutex
	inEscapeSequence := sOUTOFSEQUENCE
	var myOnce *sync.Once

	codeMap := map[rune]string{
		rune(9):   "TAB",
		rune(13):  "ENTER",
		rune(127): "BACKSPACE",
	}

	send := func(event inputEvent) bool {
		select {
		case stringChannel <- event:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		runeRead, _, err := reader.ReadRune()

		log.Debugf("Rune read %v %v", runeRead, strconv.QuoteRune(runeRead))

		if err != nil || runeRead == 3 {
			send(inputEvent{"", errInputGone})
			cancel()
			return
		}

		if myOnce != nil {
			myOnce.Do(func() {})
			myOnce = nil
		}

		mu.Lock()
		state := inEscapeSequence
		mu.Unlock()

		var event *inputEvent
		switch {
		case state == sOUTOFSEQUENCE && runeRead == 27:
			mu.Lock()
			inEscapeSequence = sINESCAPE
			mu.Unlock()
			myOnce = new(sync.Once)
			go sleepThenReport(stringChannel, myOnce, &inEscapeSequence, &mu)
		case state == sINESCAPE:
			if runeRead == '[' {
				mu.Lock()
				inEscapeSequence = sDIRECTIVE
				mu.Unlock()
			} else if runeRead == 27 {
				event = &inputEvent{"ESCAPE", nil}
			} else {
				mu.Lock()
				inEscapeSequence = sOUTOFSEQUENCE
				mu.Unlock()
				event = &inputEvent{string(runeRead), nil}
			}
		case state == sDIRECTIVE:
			switch runeRead {
			case 'A':
				event = &inputEvent{"UP", nil}
			case 'B':
				event = &inputEvent{"DOWN", nil}
			case 'C':
				event = &inputEvent{"RIGHT", nil}
			case 'D':
				event = &inputEvent{"LEFT", nil}
			default:
				event = &inputEvent{strconv.QuoteRune(runeRead), nil}
			}
			mu.Lock()
			inEscapeSequence = sOUTOFSEQUENCE
			mu.Unlock()
		default:
			if newString, ok := codeMap[runeRead]; ok {
				event = &inputEvent{newString, nil}
			} else {
				event = &inputEvent{string(runeRead), nil}
			}
		}

		if event != nil && !send(*event) {
			return
		}
	}
}

// arrowKeys maps cursor keys onto the movement keys
var arrowKeys = map[string]rune{
	"UP":    'w',
	"DOWN":  's',
	"LEFT":  'a',
	"RIGHT": 'd',
}

// KeyboardInput reads keys from a terminal, turning arrow keys into movement
type KeyboardInput struct {
	ctx    context.Context
	events chan inputEvent
}

// NewKeyboardInput starts reading keys from r until r ends, ctrl-C is typed,
// or ctx is cancelled
func NewKeyboardInput(ctx context.Context, r io.Reader) *KeyboardInput {
	ctx, cancel := context.WithCancel(ctx)
	input := &KeyboardInput{ctx: ctx, events: make(chan inputEvent, 1)}
	go handleKeys(ctx, bufio.NewReader(r), input.events, cancel)
	return input
}

// NextKey waits for the next key worth acting on
func (k *KeyboardInput) NextKey() (rune, bool) {
	for {
		select {
		case <-k.ctx.Done():
			return 0, false
		case event := <-k.events:
			if event.err != nil {
				return 0, false
			}
			if key, ok := arrowKeys[event.inputString]; ok {
				return key, true
			}
			if runes := []rune(event.inputString); len(runes) == 1 {
				return runes[0], true
			}
		}
	}
}
