package game

import (
	"fmt"
	"strings"

	"github.com/territorial-rl/territorial/internal/game/core"
)

// ANSI color codes for the terminal board renderer.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
	colorWhite  = "\033[37m"
	colorGray   = "\033[90m"
)

var playerColors = []string{colorRed, colorBlue, colorGreen, colorYellow, colorPurple, colorCyan}

var buildingSymbols = map[core.BuildingKind]string{
	core.BuildingBarracks: "⚔",
	core.BuildingFarm:     "♣",
	core.BuildingMine:     "◆",
	core.BuildingMarket:   "$",
	core.BuildingFort:     "⬢",
	core.BuildingTower:    "♖",
}

// Board renders the grid as a colored ASCII map for the terminal
// runner. The rendering layer proper lives outside this module; this
// is a debugging view.
func (e *Engine) Board() string {
	var sb strings.Builder
	g := e.gs.Grid

	const (
		emptySymbol = "·"
		waterSymbol = "≈"
		wallSymbol  = "▓"
		playerChars = "ABCDEFGH"
	)

	sb.WriteString("   ")
	for x := 0; x < g.W; x++ {
		sb.WriteString(fmt.Sprintf("%2d", x))
	}
	sb.WriteString("\n")

	for y := 0; y < g.H; y++ {
		sb.WriteString(fmt.Sprintf("%2d ", y))
		for x := 0; x < g.W; x++ {
			t := g.At(x, y)

			var symbol, color string
			switch {
			case t.IsWater():
				symbol = " " + waterSymbol
				color = colorBlue
			case t.Wall:
				symbol = " " + wallSymbol
				color = playerColor(t.Owner)
			case t.IsNeutral():
				symbol = " " + emptySymbol
				color = colorGray
			default:
				pc := string(playerChars[t.Owner%len(playerChars)])
				if s, ok := buildingSymbols[t.Building.Kind]; ok {
					symbol = pc + s
				} else if t.Troops < 10 {
					symbol = pc + fmt.Sprintf("%d", t.Troops)
				} else {
					symbol = pc + "+"
				}
				color = playerColor(t.Owner)
			}
			sb.WriteString(color + symbol + colorReset)
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("\ntick %d day %d", e.gs.Tick, e.gs.Day))
	if e.gs.IsBoomActive() {
		sb.WriteString("  [resource boom]")
	}
	sb.WriteString("\n")
	for i := range e.gs.Players {
		p := &e.gs.Players[i]
		status := ""
		if !p.Alive {
			status = " (eliminated)"
		}
		sb.WriteString(fmt.Sprintf("%s%c %s%s: %d territories, %d troops, %d gold%s\n",
			playerColor(p.ID), playerChars[p.ID%len(playerChars)], colorReset,
			p.Name, p.TerritoryCount, p.TroopCount, p.Gold, status))
	}
	return sb.String()
}

func playerColor(playerID int) string {
	if playerID >= 0 && playerID < len(playerColors) {
		return playerColors[playerID]
	}
	return colorWhite
}
