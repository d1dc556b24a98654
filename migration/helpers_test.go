package migration

import (
	"strings"

	"github.com/iov-one/versioned/errors"
)

// Test data family "my" with three schema versions.

type myMsgV1 struct {
	Content string `json:"content" yaml:"content"`
}

func (myMsgV1) TypeName() string      { return "my" }
func (myMsgV1) SchemaVersion() uint32 { return 1 }

type myMsgV2 struct {
	Content string `json:"content" yaml:"content"`
	Count   int    `json:"count" yaml:"count"`
}

func (myMsgV2) TypeName() string      { return "my" }
func (myMsgV2) SchemaVersion() uint32 { return 2 }

type myMsg struct {
	Words []string `json:"words" yaml:"words"`
	Count int      `json:"count" yaml:"count"`
}

func (myMsg) TypeName() string      { return "my" }
func (myMsg) SchemaVersion() uint32 { return 3 }

// Test data family "other" with a single schema version.

type otherMsg struct {
	Name string `json:"name" yaml:"name"`
}

func (otherMsg) TypeName() string      { return "other" }
func (otherMsg) SchemaVersion() uint32 { return 1 }

func myMsgToV2(v1 myMsgV1) (myMsgV2, error) {
	if v1.Content == "fail" {
		return myMsgV2{}, errors.Wrap(errors.ErrInput, "cannot migrate")
	}
	return myMsgV2{Content: v1.Content, Count: -1}, nil
}

func myMsgToV3(v2 myMsgV2) (myMsg, error) {
	return myMsg{Words: strings.Fields(v2.Content), Count: v2.Count}, nil
}

func myHandlers() []Handler {
	return []Handler{
		Initial[myMsgV1](),
		Upgrade(myMsgToV2),
		Upgrade(myMsgToV3),
	}
}

func allHandlers() []Handler {
	return append(myHandlers(), Initial[otherMsg]())
}
