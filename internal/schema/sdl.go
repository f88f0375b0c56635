package schema

import (
	"fmt"
	"sort"
	"strings"
)

// String renders the document back to SDL, one declaration per type in the
// schema's own order. It is a display aid for --print-schema, not a real
// SDL emitter: it does not attempt to reproduce directives or comments the
// server's introspection result wouldn't carry through unembellished.
func (d Document) String() string {
	var b strings.Builder
	b.WriteString(schemaDef(d.Schema))
	for _, t := range d.Schema.Types {
		if strings.HasPrefix(t.Name, "__") {
			continue
		}
		decl := typeDecl(t)
		if decl == "" {
			continue
		}
		b.WriteString("\n")
		b.WriteString(decl)
	}
	return b.String()
}

func schemaDef(s Schema) string {
	var b strings.Builder
	b.WriteString("schema {\n")
	if s.QueryType != nil {
		fmt.Fprintf(&b, "  query: %s\n", s.QueryType.Name)
	}
	if s.MutationType != nil {
		fmt.Fprintf(&b, "  mutation: %s\n", s.MutationType.Name)
	}
	if s.SubscriptionType != nil {
		fmt.Fprintf(&b, "  subscription: %s\n", s.SubscriptionType.Name)
	}
	b.WriteString("}\n")
	return b.String()
}

func typeDecl(t FullType) string {
	switch t.Kind {
	case Scalar:
		return fmt.Sprintf("scalar %s\n", t.Name)
	case Object:
		return objectDecl("type", t)
	case Interface:
		return objectDecl("interface", t)
	case Union:
		names := make([]string, len(t.PossibleTypes))
		for i, p := range t.PossibleTypes {
			names[i] = p.Name
		}
		return fmt.Sprintf("union %s = %s\n", t.Name, strings.Join(names, " | "))
	case Enum:
		var b strings.Builder
		fmt.Fprintf(&b, "enum %s {\n", t.Name)
		for _, v := range t.EnumValues {
			fmt.Fprintf(&b, "  %s\n", v.Name)
		}
		b.WriteString("}\n")
		return b.String()
	case InputObject:
		var b strings.Builder
		fmt.Fprintf(&b, "input %s {\n", t.Name)
		for _, f := range t.InputFields {
			fmt.Fprintf(&b, "  %s: %s\n", f.Name, f.Type.String())
		}
		b.WriteString("}\n")
		return b.String()
	default:
		return ""
	}
}

func objectDecl(keyword string, t FullType) string {
	var b strings.Builder
	if len(t.Interfaces) > 0 {
		names := make([]string, len(t.Interfaces))
		for i, iface := range t.Interfaces {
			names[i] = iface.Name
		}
		sort.Strings(names)
		fmt.Fprintf(&b, "%s %s implements %s {\n", keyword, t.Name, strings.Join(names, " & "))
	} else {
		fmt.Fprintf(&b, "%s %s {\n", keyword, t.Name)
	}
	for _, f := range t.Fields {
		if len(f.Args) == 0 {
			fmt.Fprintf(&b, "  %s: %s\n", f.Name, f.Type.String())
			continue
		}
		args := make([]string, len(f.Args))
		for i, a := range f.Args {
			args[i] = fmt.Sprintf("%s: %s", a.Name, a.Type.String())
		}
		fmt.Fprintf(&b, "  %s(%s): %s\n", f.Name, strings.Join(args, ", "), f.Type.String())
	}
	b.WriteString("}\n")
	return b.String()
}
