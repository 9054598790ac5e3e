package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/information-sharing-networks/posts-demo/internal/client"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.ListPosts(cmd.Context())
			if err != nil {
				return err
			}
			return a.printResponse(cmd.OutOrStdout(), resp)
		},
	}
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <post-id>",
		Short: "Show a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.GetPost(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printResponse(cmd.OutOrStdout(), resp)
		},
	}
}

func newCreateCmd(a *app) *cobra.Command {
	var req client.PostRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a post",
		Long:  `Create a post. The content must not be used by any other post.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.CreatePost(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.printResponse(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVarP(&req.Title, "title", "t", "", "Post title [required]")
	cmd.Flags().StringVarP(&req.Content, "content", "c", "", "Post content [required]")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var req client.PostRequest

	cmd := &cobra.Command{
		Use:   "update <post-id>",
		Short: "Replace the title and content of a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.UpdatePost(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			return a.printResponse(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVarP(&req.Title, "title", "t", "", "New title [required]")
	cmd.Flags().StringVarP(&req.Content, "content", "c", "", "New content [required]")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <post-id>",
		Short: "Delete a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.DeletePost(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printResponse(cmd.OutOrStdout(), resp)
		},
	}
}

// printResponse writes the (indented) JSON body and turns non-2xx statuses into an error
func (a *app) printResponse(w io.Writer, resp *client.Response) error {
	a.appLogger.Debug("response received", slog.Int("status_code", resp.StatusCode))

	if len(resp.Body) > 0 {
		var out bytes.Buffer
		if err := json.Indent(&out, resp.Body, "", "  "); err != nil {
			out.Reset()
			out.Write(resp.Body)
		}
		out.WriteByte('\n')
		if _, err := out.WriteTo(w); err != nil {
			return err
		}
	}

	if !resp.IsSuccess() {
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}
	return nil
}
