// bookctl 图书API命令行客户端
//
// 用法示例：
//
//	bookctl all
//	bookctl create "Dune" "Frank Herbert" 9780441013593 1965
//	bookctl get 9780441013593
//	bookctl update 9780441013593 -t "Dune Messiah" -y 1969
//	bookctl delete 9780441013593
//	bookctl search herbert
//
// 服务地址通过--addr指定，默认读取BOOKSHELF_ADDR环境变量，
// 再默认http://localhost:8080
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var addr string

	root := &cobra.Command{
		Use:           "bookctl",
		Short:         "CLI to help interact with the book API",
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultAddr := os.Getenv("BOOKSHELF_ADDR")
	if defaultAddr == "" {
		defaultAddr = "http://localhost:8080"
	}
	root.PersistentFlags().StringVar(&addr, "addr", defaultAddr, "book API base URL")

	client := func() *Client { return NewClient(addr) }

	root.AddCommand(
		newAllCmd(client),
		newCreateCmd(client),
		newGetCmd(client),
		newUpdateCmd(client),
		newDeleteCmd(client),
		newSearchCmd(client),
	)

	return root
}

func newAllCmd(client func() *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Get all the books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			body, err := client().GetBooks()
			if err != nil {
				return err
			}
			cmd.Println(body)
			return nil
		},
	}
}

func newCreateCmd(client func() *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "create <title> <author> <ISBN> <year>",
		Short: "Create a book",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[3])
			if err != nil {
				return fmt.Errorf("year must be a number: %q", args[3])
			}

			body, err := client().CreateBook(map[string]any{
				"title":           args[0],
				"author":          args[1],
				"ISBN":            args[2],
				"publicationYear": year,
			})
			if err != nil {
				return err
			}
			cmd.Println(body)
			return nil
		},
	}
}

func newGetCmd(client func() *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "get <ISBN>",
		Short: "Get a book by its ISBN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := client().GetBook(args[0])
			if err != nil {
				return err
			}
			cmd.Println(body)
			return nil
		},
	}
}

func newUpdateCmd(client func() *Client) *cobra.Command {
	var (
		title  string
		author string
		year   int
	)

	cmd := &cobra.Command{
		Use:   "update <ISBN>",
		Short: "Update a book by its ISBN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// 只发送显式提供的字段，让服务端做部分合并
			fields := map[string]any{}
			if cmd.Flags().Changed("title") {
				fields["title"] = title
			}
			if cmd.Flags().Changed("author") {
				fields["author"] = author
			}
			if cmd.Flags().Changed("publicationYear") {
				fields["publicationYear"] = year
			}

			body, err := client().UpdateBook(args[0], fields)
			if err != nil {
				return err
			}
			cmd.Println(body)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "The Book Title")
	cmd.Flags().StringVarP(&author, "author", "a", "", "The Book Author")
	cmd.Flags().IntVarP(&year, "publicationYear", "y", 0, "The Book Publication Year")

	return cmd
}

func newDeleteCmd(client func() *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <ISBN>",
		Short: "Delete a book by its ISBN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := client().DeleteBook(args[0])
			if err != nil {
				return err
			}
			cmd.Println(body)
			return nil
		},
	}
}

func newSearchCmd(client func() *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Search for a book by title or author",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := client().SearchBooks(args[0])
			if err != nil {
				return err
			}
			cmd.Println(body)
			return nil
		},
	}
}
