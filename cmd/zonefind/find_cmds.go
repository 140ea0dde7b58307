/*
 * Copyright (c) 2024 Johan Stenstam, johani@johani.org
 */

package main

import (
	"fmt"

	"github.com/gookit/goutil/dump"
	"github.com/johanix/zonefind/zone"
	"github.com/miekg/dns"
	"github.com/spf13/cobra"
)

var findQname, findQtype string
var findGlueOK, findDNSSEC, findNoWildcard bool

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Look up a name and type in the configured zone",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cfgFile)
		cobra.CheckErr(err)

		zd, err := loadZone(cfg)
		cobra.CheckErr(err)

		qtype, ok := dns.StringToType[findQtype]
		if !ok {
			cobra.CheckErr(fmt.Errorf("unknown RR type %q", findQtype))
		}

		var opts zone.FindOptions
		if findGlueOK {
			opts |= zone.FindGlueOK
		}
		if findDNSSEC {
			opts |= zone.FindDNSSEC
		}
		if findNoWildcard {
			opts |= zone.NoWildcard
		}

		ctx, err := zone.Find(zd, findQname, qtype, opts)
		cobra.CheckErr(err)

		fmt.Printf("%s %s -> %s\n", findQname, findQtype, ctx.Code)

		if findDNSSEC && zd.Signing() == zone.SigningNSEC {
			printNSECProof(zd, findQname, ctx)
		}

		if verbose || debug {
			dump.P(ctx)
		}
	},
}

var nsec3Qname string
var nsec3Recursive bool

var findNSEC3Cmd = &cobra.Command{
	Use:   "findnsec3",
	Short: "Compute the NSEC3 non-existence proof for a name",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cfgFile)
		cobra.CheckErr(err)

		zd, err := loadZone(cfg)
		cobra.CheckErr(err)

		res, err := zone.FindNSEC3(zd, nsec3Qname, nsec3Recursive)
		cobra.CheckErr(err)

		fmt.Printf("matched:        %t (at %d labels)\n", res.Matched, res.ClosestLabels)
		fmt.Printf("closest proof:  %s\n", res.ClosestProof)
		if res.NextProof != nil {
			fmt.Printf("next-closer proof: %s\n", res.NextProof)
		}
		if verbose || debug {
			dump.P(res)
		}
	},
}

func init() {
	findCmd.Flags().StringVarP(&findQname, "name", "n", "", "query name")
	findCmd.Flags().StringVarP(&findQtype, "type", "t", "A", "query type")
	findCmd.Flags().BoolVar(&findGlueOK, "glue", false, "resolve in-bailiwick glue for delegations")
	findCmd.Flags().BoolVar(&findDNSSEC, "dnssec", false, "request DNSSEC proof material")
	findCmd.Flags().BoolVar(&findNoWildcard, "no-wildcard", false, "suppress wildcard synthesis")
	findCmd.MarkFlagRequired("name")

	findNSEC3Cmd.Flags().StringVarP(&nsec3Qname, "name", "n", "", "query name")
	findNSEC3Cmd.Flags().BoolVar(&nsec3Recursive, "recursive", false, "keep shortening the name until a closest encloser is found, instead of one covering attempt")
	findNSEC3Cmd.MarkFlagRequired("name")
}

// printNSECProof fetches and prints the NSEC record that accompanies
// ctx's result: the covering witness for an NXDOMAIN, or the record
// at the answer's own closest encloser for an NXRRSET/empty
// non-terminal result.
func printNSECProof(zd *zone.ZoneData, qname string, ctx zone.Context) {
	var rr dns.RR
	var err error

	switch ctx.Code {
	case zone.NXDomain:
		rr, err = zone.GetNSECWitness(zd, qname)
	case zone.NXRRset:
		if ce := ctx.ClosestEncloser(); ce != nil {
			rr, err = zone.GetNSECForNXRRSET(zd, ce)
		}
	default:
		return
	}

	if err != nil {
		fmt.Printf("nsec: %v\n", err)
		return
	}
	if rr != nil {
		fmt.Printf("nsec: %s\n", rr)
	}
}
