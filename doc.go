/*
Package ddns keeps a DNS record pointed at the current address of this host.

Usage will always start with [ddns.New],
which returns the DDNSClient implementation.
New requires the record name which will be updated and a [RecordStore] for a DNS provider,
registered with [UsingNFSN] or [UsingCloudflare].
Additional client configuration options are listed in the docs for New.

The update itself is done by [Reconcile], which can also be used on its own.
*/
package ddns
