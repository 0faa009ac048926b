package main

import (
	"bytes"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/myolab/myolab/internal/lint"
	"github.com/myolab/myolab/internal/mjcf"
	"github.com/myolab/myolab/internal/scene"
	"github.com/myolab/myolab/internal/viz"
	"github.com/spf13/cobra"
)

func newSceneCmd() *cobra.Command {
	sceneCmd := &cobra.Command{
		Use:   "scene",
		Short: "inspect and validate scene model files",
	}

	validateCmd := &cobra.Command{
		Use:   "validate [file|builtin]",
		Short: "decode and compile a model, reporting the first error",
		Args:  cobra.ExactArgs(1),
		RunE:  validateScene,
	}

	treeCmd := &cobra.Command{
		Use:   "tree [file|builtin]",
		Short: "print the element tree",
		Args:  cobra.ExactArgs(1),
		RunE:  treeScene,
	}

	inspectCmd := &cobra.Command{
		Use:   "inspect [file|builtin]",
		Short: "summarize options and element counts",
		Args:  cobra.ExactArgs(1),
		RunE:  inspectScene,
	}

	lintCmd := &cobra.Command{
		Use:   "lint [file|builtin]",
		Short: "flag legal but suspicious model constructs",
		Args:  cobra.ExactArgs(1),
		RunE:  lintScene,
	}

	refsCmd := &cobra.Command{
		Use:   "refs [file|builtin]",
		Short: "list every resolved name reference",
		Args:  cobra.ExactArgs(1),
		RunE:  refsScene,
	}

	convertCmd := &cobra.Command{
		Use:   "convert [file|builtin]",
		Short: "re-emit a model in canonical form",
		Args:  cobra.ExactArgs(1),
		RunE:  convertScene,
	}
	convertCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	listScenesCmd := &cobra.Command{
		Use:   "list",
		Short: "list built-in scenes",
		RunE:  listBuiltinScenes,
	}

	sceneCmd.AddCommand(validateCmd, treeCmd, inspectCmd, lintCmd, refsCmd, convertCmd, listScenesCmd)
	return sceneCmd
}

// loadDocument reads a model from disk, falling back to the built-in
// scene of that name.
func loadDocument(arg string) (*mjcf.Document, error) {
	if _, err := os.Stat(arg); err == nil {
		return mjcf.DecodeFile(arg)
	}
	data, err := scene.Builtin(arg)
	if err != nil {
		return nil, err
	}
	return mjcf.Decode(bytes.NewReader(data))
}

func loadModel(arg string) (*scene.Model, error) {
	doc, err := loadDocument(arg)
	if err != nil {
		return nil, err
	}
	return scene.Compile(doc)
}

func validateScene(cmd *cobra.Command, args []string) error {
	m, err := loadModel(args[0])
	if err != nil {
		return err
	}

	st := m.Stats()
	fmt.Printf("%s: ok\n", args[0])
	fmt.Printf("%d bodies, %d joints, %d geoms, %d sites, %d tendons, %d actuators, %d sensors\n",
		st.Bodies, st.Joints, st.Geoms, st.Sites, st.Tendons, st.Actuators, st.Sensors)
	return nil
}

func treeScene(cmd *cobra.Command, args []string) error {
	m, err := loadModel(args[0])
	if err != nil {
		return err
	}
	fmt.Print(viz.Tree(m))
	return nil
}

func inspectScene(cmd *cobra.Command, args []string) error {
	m, err := loadModel(args[0])
	if err != nil {
		return err
	}
	fmt.Print(viz.Summary(m))
	return nil
}

func lintScene(cmd *cobra.Command, args []string) error {
	m, err := loadModel(args[0])
	if err != nil {
		return err
	}

	findings := lint.Check(m)
	if len(findings) == 0 {
		fmt.Println("no findings")
		return nil
	}
	for _, f := range findings {
		fmt.Println(f)
	}
	fmt.Printf("\n%d finding(s)\n", len(findings))
	return nil
}

func refsScene(cmd *cobra.Command, args []string) error {
	m, err := loadModel(args[0])
	if err != nil {
		return err
	}

	refs := m.Refs()
	if len(refs) == 0 {
		fmt.Println("no references")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FROM\tNAME\tTO\tNAME")
	for _, r := range refs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.FromKind, r.From, r.ToKind, r.To)
	}
	return w.Flush()
}

func convertScene(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	// compile to catch reference errors before emitting
	if _, err := scene.Compile(doc); err != nil {
		return err
	}

	if outFile != "" {
		return mjcf.EncodeFile(outFile, doc)
	}
	return mjcf.Encode(os.Stdout, doc)
}

func listBuiltinScenes(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBODIES\tTENDONS\tACTUATORS\tSENSORS")
	for _, name := range scene.BuiltinNames() {
		m, err := scene.LoadBuiltin(name)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}
		st := m.Stats()
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n", name, st.Bodies, st.Tendons, st.Actuators, st.Sensors)
	}
	return w.Flush()
}
