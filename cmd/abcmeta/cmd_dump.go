package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/abcmeta/abc"
	"github.com/dhamidi/abcmeta/as3"
)

func newDumpCmd(g *globals) *cobra.Command {
	var (
		swfPath  string
		metadata bool
	)

	cmd := &cobra.Command{
		Use:   "dump [file]",
		Short: "List the classes of a movie with their traits",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := g.inputPath(args, swfPath)
			if err != nil {
				return err
			}
			m, err := loadModule(path)
			if err != nil {
				return err
			}
			for _, c := range m.Classes {
				if err := dumpClass(os.Stdout, c, metadata); err != nil {
					return fmt.Errorf("dump %s: %w", c.Name, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&swfPath, "swf", "", "SWF file to process")
	cmd.Flags().BoolVarP(&metadata, "metadata", "m", false, "print the metadata attached to each trait")

	return cmd
}

func dumpClass(w io.Writer, c *as3.Class, metadata bool) error {
	kind := "class"
	if c.IsInterface() {
		kind = "interface"
	}
	if c.Instance().Flags.IsFinal() {
		kind = "final " + kind
	}
	fmt.Fprintf(w, "%s %s", kind, c.Name)
	if c.SuperName != "" {
		fmt.Fprintf(w, " extends %s", c.SuperName)
	}
	fmt.Fprintln(w)

	if t := c.ClassTrait(); t != nil && metadata {
		if err := dumpAnnotations(w, c, t, "  "); err != nil {
			return err
		}
	}

	for i := range c.Instance().Traits {
		t := &c.Instance().Traits[i]
		name, err := c.Resolver.Name(t.Name, true)
		if err != nil {
			return err
		}
		typ, err := traitType(c, t)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %-8s %s%s %s\n", t.Kind, traitModifiers(t.Attributes), name, typ)
		if metadata {
			if err := dumpAnnotations(w, c, t, "    "); err != nil {
				return err
			}
		}
	}
	return nil
}

func dumpAnnotations(w io.Writer, c *as3.Class, t *abc.Trait, indent string) error {
	annotations, err := c.Annotations(t)
	if err != nil {
		return err
	}
	for _, a := range annotations {
		fmt.Fprintf(w, "%s[%s", indent, a.Name)
		for i, arg := range a.Arguments {
			sep := ", "
			if i == 0 {
				sep = "("
			}
			if arg.Key == "" {
				fmt.Fprintf(w, "%s%q", sep, arg.Value)
			} else {
				fmt.Fprintf(w, "%s%s=%q", sep, arg.Key, arg.Value)
			}
		}
		if len(a.Arguments) > 0 {
			fmt.Fprint(w, ")")
		}
		fmt.Fprintln(w, "]")
	}
	return nil
}

// traitType describes the declared type of a slot or the signature of a
// method-like trait.
func traitType(c *as3.Class, t *abc.Trait) (string, error) {
	switch {
	case t.IsSlot():
		typ, err := c.Resolver.Name(t.TypeName, true)
		if err != nil {
			return "", err
		}
		return ": " + typ, nil
	case t.IsMethod():
		m, err := c.File.MethodAt(t.Method)
		if err != nil {
			return "", err
		}
		sig := "("
		for i, p := range m.ParamTypes {
			typ, err := c.Resolver.Name(p, true)
			if err != nil {
				return "", err
			}
			if i > 0 {
				sig += ", "
			}
			sig += typ
		}
		ret, err := c.Resolver.Name(m.ReturnType, true)
		if err != nil {
			return "", err
		}
		return sig + "): " + ret, nil
	}
	return "", nil
}

func traitModifiers(attrs abc.TraitAttributes) string {
	var mods string
	if attrs.IsOverride() {
		mods += "override "
	}
	if attrs.IsFinal() {
		mods += "final "
	}
	return mods
}
