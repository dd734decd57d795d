// Command nesdebug is an interactive terminal debugger for stepping a
// loaded cartridge one CPU instruction at a time.
package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/bdwalton/nescore/cpu"
	"github.com/bdwalton/nescore/nesrom"
	"github.com/bdwalton/nescore/system"
)

type model struct {
	console *system.Console
	prevPC  uint16
	err     error
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "s":
			m.prevPC = m.console.CPU.PC.Get()
			if err := m.console.Step(nil); err != nil {
				m.err = err
				return m, nil
			}
		}
	}
	return m, nil
}

func (m model) memoryPage(start uint16) string {
	s := fmt.Sprintf("%04x | ", start)
	pc := m.console.CPU.PC.Get()
	for i := uint16(0); i < 16; i++ {
		v, err := m.console.GetU8(uint64(start + i))
		if err != nil {
			s += " ?? "
			continue
		}
		if start+i == pc {
			s += fmt.Sprintf("[%02x]", v)
		} else {
			s += fmt.Sprintf(" %02x ", v)
		}
	}
	return s
}

func (m model) memoryTable() string {
	pc := m.console.CPU.PC.Get()
	base := pc &^ 0x0F
	lines := make([]string, 0, 5)
	for i := -2; i <= 2; i++ {
		lines = append(lines, m.memoryPage(base+uint16(i*16)))
	}
	return strings.Join(lines, "\n")
}

func (m model) status() string {
	c := m.console.CPU
	return fmt.Sprintf(`
PC: %04x (was %04x)
 A: %02x  X: %02x  Y: %02x  SP: %02x
 P: N V _ B D I Z C
    %s
clock: %d
`,
		c.PC.Get(), m.prevPC, c.Registers.A, c.Registers.X, c.Registers.Y, c.Registers.SP,
		flagLine(c.Flags.Bits()), c.Clock.Cycles())
}

func flagLine(p uint8) string {
	var b strings.Builder
	for bit := uint8(0x80); bit > 0; bit >>= 1 {
		if p&bit != 0 {
			b.WriteString("/ ")
		} else {
			b.WriteString("  ")
		}
	}
	return b.String()
}

func (m model) View() string {
	if m.err != nil {
		return fmt.Sprintf("halted: %v\n\npress q to quit\n", m.err)
	}

	// Decode advances PC, so decode on a copy to leave the real CPU at the
	// instruction the next step will execute.
	probe := *m.console.CPU
	inst, decodeErr := cpu.Decode(&probe, m.console)
	dump := "decode error"
	if decodeErr == nil {
		dump = spew.Sdump(inst)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.memoryTable(), m.status()),
		"",
		"next instruction:",
		dump,
		"(space/s) step   (q) quit",
	)
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "nesdebug <rom>",
		Short: "Step a loaded ROM one CPU instruction at a time",
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

			_, err = tea.NewProgram(model{console: console}).Run()
			return err
		},
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
