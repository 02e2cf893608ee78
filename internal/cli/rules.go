package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/ppiankov/lexaudit/internal/compliance"
	"github.com/ppiankov/lexaudit/internal/extract"
	"github.com/ppiankov/lexaudit/internal/model"
	"github.com/spf13/cobra"
)

// rulesCmd represents the rules command
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the clause and compliance rules used for verification",
	Long: `Rules prints the static tables the verifier applies:
mandatory clauses per contract type, the keywords that satisfy each
clause, and the compliance checks of every supported jurisdiction.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sets := extract.DefaultClauseSets()
		keywords := extract.DefaultClauseKeywords()
		if err := extract.ValidateTables(sets, keywords); err != nil {
			return err
		}
		printRules(cmd.OutOrStdout(), sets, keywords, compliance.NewEngine())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func printRules(w io.Writer, sets map[model.ContractType][]string, keywords map[string][]string, engine *compliance.Engine) {
	fmt.Fprintln(w, "Mandatory clauses")
	for _, ct := range model.ContractTypes() {
		fmt.Fprintf(w, "  %-11s %s\n", ct, strings.Join(sets[ct], ", "))
	}

	fmt.Fprintln(w, "\nClause keywords")
	for _, id := range extract.ClauseIDs(keywords) {
		marker := " "
		if extract.IsCriticalClause(id) {
			marker = "*"
		}
		fmt.Fprintf(w, " %s%-16s %s\n", marker, id, strings.Join(keywords[id], " | "))
	}
	fmt.Fprintln(w, "  (* critical: a missing critical clause is a critical finding)")

	fmt.Fprintln(w, "\nCompliance checks")
	for _, code := range engine.Jurisdictions() {
		fmt.Fprintf(w, "  %s: %s\n", code, strings.Join(engine.Categories(code), ", "))
	}
	fmt.Fprintln(w, "  Other jurisdictions run no compliance checks.")
}
