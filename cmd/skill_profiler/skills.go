package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-profiler/internal/ontology"
)

var skillsType string

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List the known skill ontology",
	RunE:  runSkills,
}

func init() {
	skillsCmd.Flags().StringVarP(&skillsType, "type", "t", "", "Filter by skill type (hard, soft, emerging)")
	rootCmd.AddCommand(skillsCmd)
}

func runSkills(_ *cobra.Command, _ []string) error {
	if skillsType != "" {
		skills := ontology.ByType(ontology.SkillType(skillsType))
		if len(skills) == 0 {
			return fmt.Errorf("unknown skill type: %s", skillsType)
		}
		for _, s := range skills {
			fmt.Println(s.Name)
		}
		return nil
	}

	for _, s := range ontology.All() {
		fmt.Printf("%-35s %s\n", s.Name, s.Type)
	}
	return nil
}
