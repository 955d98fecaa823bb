package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/udisondev/arenafx/internal/game/effect"
)

var errBadCommand = errors.New("bad command")

type castCommand struct {
	slot int
	aim  effect.Vec2
}

// parseCommand reads one line of the form "cast <slot> <aim-x> <aim-y>".
// Slots are 1-based on the command line.
func parseCommand(line string) (castCommand, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 || fields[0] != "cast" {
		return castCommand{}, fmt.Errorf("%q: want cast <slot> <x> <y>: %w", line, errBadCommand)
	}

	slot, err := strconv.Atoi(fields[1])
	if err != nil || slot < 1 {
		return castCommand{}, fmt.Errorf("slot %q: %w", fields[1], errBadCommand)
	}
	x, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return castCommand{}, fmt.Errorf("aim x %q: %w", fields[2], errBadCommand)
	}
	y, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return castCommand{}, fmt.Errorf("aim y %q: %w", fields[3], errBadCommand)
	}
	return castCommand{slot: slot - 1, aim: effect.V(x, y)}, nil
}

type castQueue interface {
	QueueCast(casterID effect.EntityID, slot int, aim effect.Vec2) error
}

// readCommands queues a cast for every valid line until r is exhausted.
func readCommands(r io.Reader, q castQueue, caster effect.EntityID) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			slog.Warn("ignoring command", "error", err)
			continue
		}
		if err := q.QueueCast(caster, cmd.slot, cmd.aim); err != nil {
			slog.Warn("cast not queued", "slot", cmd.slot+1, "error", err)
		}
	}
	if err := sc.Err(); err != nil {
		slog.Warn("command input failed", "error", err)
	}
}
