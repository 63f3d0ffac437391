package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/akshaykmanoj/treeline/pkg/forest"
	"github.com/akshaykmanoj/treeline/pkg/rel"
	"github.com/akshaykmanoj/treeline/pkg/render/text"
)

// browseCommand creates the browse command: an interactive viewer that pages
// through the relationship sections of a rendered forest.
func (c *CLI) browseCommand() *cobra.Command {
	var relations []string

	cmd := &cobra.Command{
		Use:   "browse [file]",
		Short: "Browse relationship sections interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, _, err := buildFromFile(args[0], relations)
			if err != nil {
				return err
			}

			tracked := toRelations(relations)
			if len(tracked) == 0 {
				tracked = f.Relations
			}
			sections := buildSections(f, tracked)
			if len(sections) == 0 {
				printWarning("No relationship sections to browse")
				fmt.Print(text.Render(f, text.Options{}))
				return nil
			}

			model := newBrowseModel(sections)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().StringSliceVarP(&relations, "relations", "r", nil, "relation allow-list (first entry is primary)")

	return cmd
}

// section is one relationship's rendered body.
type section struct {
	relation rel.Relation
	body     string
}

// buildSections renders one section per tracked relation, dropping
// relations whose section would be empty.
func buildSections(f *forest.Forest, tracked []rel.Relation) []section {
	var out []section
	for _, r := range tracked {
		body := text.Render(f, text.Options{Relations: []rel.Relation{r}})
		if body == "" {
			continue
		}
		out = append(out, section{relation: r, body: body})
	}
	return out
}

// browseModel is the bubbletea model for the section browser.
type browseModel struct {
	sections []section
	cursor   int
}

func newBrowseModel(sections []section) browseModel {
	return browseModel{sections: sections}
}

func (m browseModel) Init() tea.Cmd { return nil }

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.sections)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Relations") + "\n\n")
	for i, s := range m.sections {
		line := "  " + string(s.relation)
		if i == m.cursor {
			line = listSelectedStyle.Render("▸ " + string(s.relation))
		} else {
			line = listNormalStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.sections[m.cursor].body)
	b.WriteString("\n" + StyleDim.Render("↑/↓ select · q quit") + "\n")

	return b.String()
}
