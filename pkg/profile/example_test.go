package profile_test

import (
	"fmt"

	"github.com/matzehuels/alpsviz/pkg/alps"
	"github.com/matzehuels/alpsviz/pkg/profile"
)

func ExampleBuild() {
	nodes := []alps.Node{
		{ID: "Index", Descriptors: []alps.Node{
			{ID: "goBlog", Type: "safe", Rt: "#Blog"},
		}},
		{ID: "Blog", Descriptors: []alps.Node{
			{ID: "title"},
			{ID: "doPost", Type: "unsafe", Rt: "#Blog"},
		}},
	}

	p, err := profile.Build(&alps.Document{Title: "Blog"}, nodes)
	if err != nil {
		panic(err)
	}
	fmt.Println(p.Table.IDs())
	for _, l := range p.Links.All() {
		fmt.Println(l.Key())
	}
	// Output:
	// [Index goBlog Blog title doPost]
	// Index->Blog:goBlog
	// Blog->Blog:doPost
}

func ExampleFilter() {
	nodes := []alps.Node{
		{ID: "Blog", Tag: "collection"},
		{ID: "Post", Tag: "item"},
		{ID: "Comment", Tag: "collection item"},
	}
	p, _ := profile.Build(nil, nodes)

	fmt.Println(profile.Filter(p, []string{"collection", "item"}, nil).IDs())
	fmt.Println(profile.Filter(p, nil, []string{"item"}).IDs())
	// Output:
	// [Comment]
	// [Post Comment]
}
