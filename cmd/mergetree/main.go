// Command mergetree builds the merged tree of installed modules and prints
// it, without mounting anything.
package main

import (
	"os"
)

func main() {
	a := &app{}
	if err := newRootCommand(a).Execute(); err != nil {
		a.log().Error(err)
		os.Exit(1)
	}
}
