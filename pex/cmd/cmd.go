/*
 * Copyright (C) 2025 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nuts-foundation/nuts-pex/pex"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const (
	outputFormatJSON = "json"
	outputFormatYAML = "yaml"
)

// FlagSet contains flags relevant for the PEX engine
func FlagSet() *pflag.FlagSet {
	defs := pex.DefaultConfig()
	flagSet := pflag.NewFlagSet("pex", pflag.ContinueOnError)
	flagSet.Int("pex.workers", defs.Workers, "Maximum number of goroutines evaluating input descriptors in parallel. 1 disables parallel evaluation.")
	flagSet.Int("pex.parallelthreshold", defs.ParallelThreshold, "Minimum number of (input descriptor, credential) pairs before evaluation is done in parallel.")
	flagSet.String("pex.definitions", defs.Definitions, "Path to a JSON file mapping scopes to presentation definitions.")
	flagSet.Bool("pex.storesubmissions", defs.StoreSubmissions, "Store produced presentation submissions in the data directory, so they can be retrieved by id.")
	return flagSet
}

// Cmd contains sub-commands for evaluating presentation definitions locally
func Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pex",
		Short: "Presentation Exchange commands",
	}
	cmd.AddCommand(evaluateCmd())
	cmd.AddCommand(validateCmd())
	return cmd
}

func evaluateCmd() *cobra.Command {
	result := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluates verifiable credentials against a presentation definition and prints the presentation submission.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			definitionFile, _ := cmd.Flags().GetString("definition")
			credentialsFile, _ := cmd.Flags().GetString("credentials")
			outputFormat, _ := cmd.Flags().GetString("output")
			printResults, _ := cmd.Flags().GetBool("results")
			if outputFormat != outputFormatJSON && outputFormat != outputFormatYAML {
				return fmt.Errorf("invalid output format: %s", outputFormat)
			}

			definition, err := readDefinition(definitionFile)
			if err != nil {
				return err
			}
			credentials, err := readCredentials(credentialsFile)
			if err != nil {
				return err
			}
			client, err := evaluationClient(cmd.Flags())
			if err != nil {
				return err
			}
			evaluationResult := client.Evaluate(*definition, credentials)

			var output interface{} = evaluationResult.Submission
			if printResults {
				output = evaluationResult
			}
			return printOutput(cmd, output, outputFormat)
		},
	}
	result.Flags().String("definition", "", "Path to the presentation definition (JSON).")
	result.Flags().String("credentials", "", "Path to a JSON array of verifiable credentials.")
	result.Flags().StringP("output", "o", outputFormatJSON, "Output format (json, yaml).")
	result.Flags().Bool("results", false, "Print all check results instead of only the presentation submission.")
	_ = result.MarkFlagRequired("definition")
	_ = result.MarkFlagRequired("credentials")
	return result
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validates a presentation definition and prints its version.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			definition, err := readDefinition(args[0])
			if err != nil {
				return err
			}
			cmd.Printf("Presentation definition %s is valid (version=%s, input descriptors=%d)\n", definition.Id, definition.Version, len(definition.InputDescriptors))
			return nil
		},
	}
}

// evaluationClient creates a client with a URI evaluation handler configured from the (inherited) pex flags.
func evaluationClient(flags *pflag.FlagSet) (*pex.EvaluationClient, error) {
	config := pex.DefaultConfig()
	if flags.Lookup("pex.workers") != nil {
		config.Workers, _ = flags.GetInt("pex.workers")
	}
	if flags.Lookup("pex.parallelthreshold") != nil {
		config.ParallelThreshold, _ = flags.GetInt("pex.parallelthreshold")
	}
	if config.Workers < 1 {
		return nil, fmt.Errorf("pex.workers must be at least 1")
	}
	return pex.NewEvaluationClient(pex.WithHandlers(pex.NewURIEvaluationHandler(config.Workers, config.ParallelThreshold))), nil
}

func readDefinition(file string) (*pex.PresentationDefinition, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("unable to read presentation definition: %w", err)
	}
	return pex.ParsePresentationDefinition(data)
}

func readCredentials(file string) ([]pex.Credential, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials: %w", err)
	}
	return pex.ParseCredentials(data)
}

func printOutput(cmd *cobra.Command, value interface{}, format string) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	if format == outputFormatYAML {
		// go through a generic value, so the JSON property names are kept
		var generic interface{}
		if err := json.Unmarshal(data, &generic); err != nil {
			return err
		}
		if data, err = yaml.Marshal(generic); err != nil {
			return err
		}
	}
	cmd.Println(string(data))
	return nil
}
