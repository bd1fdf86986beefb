// Package uid hands out the snowflake ids of registration runs.
package uid

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var ErrInvalidID = errors.New("invalid id")

var (
	node    *snowflake.Node
	once    sync.Once
	initErr error
)

// Init sets up the node for machineID. Only the first call counts.
func Init(machineID int64) error {
	once.Do(func() {
		node, initErr = snowflake.NewNode(machineID)
		if initErr != nil {
			initErr = fmt.Errorf("failed to initialize snowflake node %d: %w", machineID, initErr)
		}
	})
	return initErr
}

func Generate() int64 {
	if node == nil {
		panic("uid package not initialized")
	}
	return node.Generate().Int64()
}

// Format renders an id the way it travels in JSON, as a decimal string.
func Format(id int64) string {
	return snowflake.ID(id).String()
}

func Parse(s string) (int64, error) {
	id, err := snowflake.ParseString(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return id.Int64(), nil
}
