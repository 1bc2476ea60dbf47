package config

// SamplePlanYAML is the starter plan written by the init command. The
// numbers describe a common household: full spending through the active
// early years, then two step-downs as travel and activity taper off.
const SamplePlanYAML = `# Retirement spending plan.
#
# All amounts are annual figures in today's dollars. The projection
# inflates them to nominal dollars year by year.

plan:
  start_year: 2026
  horizon_years: 30

spending:
  target_spend: 120000
  gogo_percent: 100
  slow_percent: 80
  nogo_percent: 70
  gogo_years: 10
  slow_years: 6
  survivor_percent: 70

rates:
  inflation: 0.03

# Uncomment to model the household dropping to one survivor at a fixed
# offset into retirement (offset 0 is the first retirement year).
# survivor:
#   death_year_offset: 15

# Named variations on the base plan. Only the fields you set change;
# everything else carries over from the blocks above.
scenarios:
  - name: lean
    target_spend: 100000
  - name: high_inflation
    inflation: 0.04
  - name: late_survivor
    death_year_offset: 20
`
