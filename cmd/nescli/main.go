// Command nescli loads an iNES/NES 2.0 ROM and runs it in an ebiten window.
package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/bdwalton/nescore/nesrom"
	"github.com/bdwalton/nescore/system"
)

const (
	screenWidth  = 256
	screenHeight = 240
)

// game adapts a *system.Console to the ebiten.Game interface: Update steps
// the emulator, Draw blits whatever the PPU's frame buffer currently holds.
type game struct {
	console *system.Console
	frame   []byte
	err     error
}

func newGame(console *system.Console) *game {
	return &game{console: console, frame: make([]byte, screenWidth*screenHeight*4)}
}

func (g *game) Update() error {
	if g.err != nil {
		return g.err
	}
	if err := g.console.Step(g.frame); err != nil {
		g.err = err
		return err
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.WritePixels(g.frame)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	var scale int

	rootCmd := &cobra.Command{
		Use:   "nescli <rom>",
		Short: "Run an NES ROM in a window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rom, err := nesrom.New(args[0])
			if err != nil {
				return fmt.Errorf("loading rom: %w", err)
			}

			console := system.New()
			if err := console.Load(rom); err != nil {
				return fmt.Errorf("loading cartridge: %w", err)
			}

			ebiten.SetWindowSize(screenWidth*scale, screenHeight*scale)
			ebiten.SetWindowTitle(fmt.Sprintf("nescore: %s", args[0]))
			ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

			return ebiten.RunGame(newGame(console))
		},
	}
	rootCmd.Flags().IntVar(&scale, "scale", 2, "Window scale factor")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
