package main

import (
	"github.com/aretw0/markov/internal/cli"
	"github.com/spf13/cobra"
)

var tweetsCmd = &cobra.Command{
	Use:   "tweets <seed> <tweet_count> <file_path> [max_words]",
	Short: "Generate tweets from a text corpus",
	Long: `Reads up to max_words words from file_path, learns which word follows which,
and prints tweet_count random tweets of at most 20 words. A word ending in '.'
ends a tweet.`,
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		args, err := positionalArgs(cmd, args)
		if err != nil {
			return err
		}
		return app.Walks(cmd.Context(), cli.ClientTweets, args)
	},
}

var snakesCmd = &cobra.Command{
	Use:   "snakes <seed> <walk_count>",
	Short: "Generate random walks on a snakes and ladders board",
	Long: `Builds the transition chain of a 100-cell board with fixed ladders and snakes
and prints walk_count random games from cell 1, each at most 60 cells long.`,
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		args, err := positionalArgs(cmd, args)
		if err != nil {
			return err
		}
		return app.Walks(cmd.Context(), cli.ClientSnakes, args)
	},
}

func init() {
	rootCmd.AddCommand(tweetsCmd)
	rootCmd.AddCommand(snakesCmd)
}
