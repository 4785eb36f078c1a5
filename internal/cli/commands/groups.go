package commands

import (
	"crypto"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/fzdarsky/srp6a/internal/config"
	"github.com/fzdarsky/srp6a/pkg/srp"
)

// kPrefixLen is the number of hex digits of k shown in the table.
const kPrefixLen = 16

// GroupsCommand implements the 'groups' command, which lists the named groups.
type GroupsCommand struct {
	stdout io.Writer
}

// NewGroupsCommand creates a new groups command instance.
func NewGroupsCommand() *GroupsCommand {
	return &GroupsCommand{stdout: os.Stdout}
}

// Execute runs the groups command with the provided arguments.
func (c *GroupsCommand) Execute(args []string) {
	fs := flag.NewFlagSet("groups", flag.ExitOnError)

	hash := fs.String("hash", "sha256", "Digest used to derive the multiplier k")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: srp6a groups [flags]

List the built-in RFC 5054 groups with their generator and the multiplier
k = H(N | PAD(g)) for the chosen digest.

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		exitWithError("failed to parse flags: %v", err)
	}

	h, err := config.ParseHash(*hash)
	if err != nil {
		exitWithError("%v", err)
	}

	if err := c.render(h); err != nil {
		exitWithError("%v", err)
	}
}

// render writes the group table.
func (c *GroupsCommand) render(h crypto.Hash) error {
	table := tablewriter.NewWriter(c.stdout)
	table.SetHeader([]string{"Name", "Bits", "G", "K"})
	table.SetAutoWrapText(false)

	for _, name := range srp.GroupNames() {
		group, err := srp.LookupGroup(name)
		if err != nil {
			return err
		}
		params, err := group.Params(h)
		if err != nil {
			return fmt.Errorf("group %s: %w", name, err)
		}

		k := params.K().Text(16)
		if len(k) > kPrefixLen {
			k = k[:kPrefixLen] + "..."
		}

		table.Append([]string{
			name,
			strconv.Itoa(group.BitLen()),
			group.G.String(),
			k,
		})
	}

	table.Render()
	return nil
}
