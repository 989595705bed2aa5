/*
Package container implements the persistent stores that control nodes read
and mutate.

Every container is tagged with a domain.Kind at construction (Tank, Sample or
Environment) and exposes the same three data operations:

  - Read returns an isolated Snapshot of the current contents.
  - Add inserts a single unit or a batch; []any and Batch values are batches,
    anything else is one unit.
  - Remove deletes a multiset of items and fails with domain.ErrNotFound if any
    of them is absent, leaving the container unchanged.

Orderings are orthogonal to kinds: List, Stack, Queue, Dictionary and Grid.
Link is a forwarding proxy whose target can be re-bound between runs, which
lets one bond template be instantiated against different concrete containers.
*/
package container
