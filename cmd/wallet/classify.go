package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func classifyCmd() *cobra.Command {
	var audioPath string

	cmd := &cobra.Command{
		Use:   "classify [utterance]",
		Short: "Classify an utterance without saving it",
		Long: `Run the classification pipeline and print the normalized result
without persisting anything. Useful for checking how an input will be
interpreted. With --audio, the recording is sent to the remote model.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd, args, audioPath)
		},
	}
	cmd.Flags().StringVar(&audioPath, "audio", "", "path to an audio recording (wav/ogg/mp3)")
	return cmd
}

func runClassify(cmd *cobra.Command, args []string, audioPath string) error {
	ctx := cmd.Context()
	logger := slog.Default()

	user, err := currentUser()
	if err != nil {
		return err
	}

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	pipeline, adapter, err := newPipeline(logger)
	if err != nil {
		return err
	}
	defer func() { _ = adapter.Close() }()

	req, err := buildRequest(ctx, store, user, logger)
	if err != nil {
		return err
	}

	if audioPath != "" {
		audio, err := os.ReadFile(audioPath)
		if err != nil {
			return fmt.Errorf("failed to read audio file: %w", err)
		}
		req.Audio = audio
		req.AudioMIME = audioMIME(audioPath)

		txn, err := pipeline.ClassifyAudio(ctx, req)
		if err != nil {
			return fmt.Errorf("classification failed: %w", err)
		}
		fmt.Printf("Classified (via %s):\n", txn.Origin)
		printTransaction(txn)
		return nil
	}

	req.Text = strings.Join(args, " ")
	txn, err := pipeline.ClassifyText(ctx, req)
	if err != nil {
		return fmt.Errorf("classification failed: %w", err)
	}

	fmt.Printf("Classified (via %s):\n", txn.Origin)
	printTransaction(txn)
	return nil
}

func audioMIME(path string) string {
	switch {
	case strings.HasSuffix(path, ".ogg"):
		return "audio/ogg"
	case strings.HasSuffix(path, ".mp3"):
		return "audio/mp3"
	default:
		return "audio/wav"
	}
}
