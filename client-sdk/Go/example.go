//go:build ignore

package main

/*
Example script for the lsmkv Go SDK.

Run this after the server has started (default address: http://localhost:8080).
It will:
  1. Perform a health-check.
  2. Insert enough keys to force a few flushes.
  3. Overwrite and delete some of them.
  4. Print lookups and the level layout.

Usage:
$ go run example.go
*/

import (
	"fmt"

	"lsmkv/client-sdk/Go/client"
)

func main() {
	c := client.NewClient("http://localhost:8080")

	ok, err := c.HealthCheck()
	if err != nil {
		panic(err)
	}
	fmt.Println("Health check:", ok)

	for i := int64(0); i < 5000; i++ {
		if err := c.Insert(i, i*10); err != nil {
			panic(err)
		}
	}
	for i := int64(0); i < 5000; i += 7 {
		if err := c.Update(i, -i); err != nil {
			panic(err)
		}
	}
	for i := int64(0); i < 5000; i += 11 {
		if err := c.Delete(i); err != nil {
			panic(err)
		}
	}

	for _, key := range []int64{1, 7, 11, 77, 9999} {
		res, err := c.Get(key)
		if err != nil {
			panic(err)
		}
		fmt.Printf("get %d: %s %d\n", key, res.Status, res.Value)
	}

	stats, err := c.Stats()
	if err != nil {
		panic(err)
	}
	fmt.Println("memtable entries:", stats.MemTableEntries)
	for _, l := range stats.Levels {
		fmt.Printf("level %d: runs %v records %v\n", l.Level, l.RunIDs, l.Records)
	}
}
