package aggregate

// Rollup selects. $1 is the refresh timestamp; the keyed variants filter on $2.
// Unique viewers count distinct signed-in viewers, falling back to the client
// address for anonymous views.

const jobStatsSelect = `
SELECT j.id,
       j.company_id,
       COALESCE(v.total_views, 0),
       COALESCE(v.unique_viewers, 0),
       COALESCE(a.total, 0),
       COALESCE(a.pending, 0),
       COALESCE(a.accepted, 0),
       v.last_view_at,
       a.last_application_at,
       $1::timestamptz
FROM jobs j
LEFT JOIN (
    SELECT job_id,
           COUNT(*) AS total_views,
           COUNT(DISTINCT COALESCE(viewer_id::text, ip_address)) AS unique_viewers,
           MAX(viewed_at) AS last_view_at
    FROM job_views
    GROUP BY job_id
) v ON v.job_id = j.id
LEFT JOIN (
    SELECT job_id,
           COUNT(*) AS total,
           COUNT(*) FILTER (WHERE status = 'PENDING') AS pending,
           COUNT(*) FILTER (WHERE status = 'ACCEPTED') AS accepted,
           MAX(created_at) AS last_application_at
    FROM applications
    GROUP BY job_id
) a ON a.job_id = j.id`

const companyStatsSelect = `
SELECT c.id,
       COALESCE(j.jobs_count, 0),
       COALESCE(j.active_jobs_count, 0),
       COALESCE(v.total_views, 0),
       COALESCE(v.unique_viewers, 0),
       COALESCE(a.total, 0),
       COALESCE(f.followers, 0),
       v.last_view_at,
       a.last_application_at,
       $1::timestamptz
FROM companies c
LEFT JOIN (
    SELECT company_id,
           COUNT(*) AS jobs_count,
           COUNT(*) FILTER (WHERE status = 'OPEN') AS active_jobs_count
    FROM jobs
    GROUP BY company_id
) j ON j.company_id = c.id
LEFT JOIN (
    SELECT jb.company_id,
           COUNT(*) AS total_views,
           COUNT(DISTINCT COALESCE(jv.viewer_id::text, jv.ip_address)) AS unique_viewers,
           MAX(jv.viewed_at) AS last_view_at
    FROM job_views jv
    JOIN jobs jb ON jb.id = jv.job_id
    GROUP BY jb.company_id
) v ON v.company_id = c.id
LEFT JOIN (
    SELECT jb.company_id,
           COUNT(*) AS total,
           MAX(ap.created_at) AS last_application_at
    FROM applications ap
    JOIN jobs jb ON jb.id = ap.job_id
    GROUP BY jb.company_id
) a ON a.company_id = c.id
LEFT JOIN (
    SELECT company_id, COUNT(*) AS followers
    FROM company_followers
    GROUP BY company_id
) f ON f.company_id = c.id`

const jobStatsColumns = `job_id, company_id, total_views, unique_viewers, total_applications,
    pending_applications, accepted_applications, last_view_at, last_application_at, last_updated`

const companyStatsColumns = `company_id, jobs_count, active_jobs_count, total_views, unique_viewers,
    total_applications, follower_count, last_view_at, last_application_at, last_updated`

// ---------------------------------------------------------------------------
// Full rebuild: run both statements in one transaction.
// ---------------------------------------------------------------------------

const deleteAllJobStats = `DELETE FROM job_stats`

const insertAllJobStats = `INSERT INTO job_stats (` + jobStatsColumns + `)` + jobStatsSelect

const deleteAllCompanyStats = `DELETE FROM company_stats`

const insertAllCompanyStats = `INSERT INTO company_stats (` + companyStatsColumns + `)` + companyStatsSelect

// ---------------------------------------------------------------------------
// Single entity
// ---------------------------------------------------------------------------

const upsertJobStats = `INSERT INTO job_stats (` + jobStatsColumns + `)` + jobStatsSelect + `
WHERE j.id = $2::uuid
ON CONFLICT (job_id) DO UPDATE SET
    company_id            = EXCLUDED.company_id,
    total_views           = EXCLUDED.total_views,
    unique_viewers        = EXCLUDED.unique_viewers,
    total_applications    = EXCLUDED.total_applications,
    pending_applications  = EXCLUDED.pending_applications,
    accepted_applications = EXCLUDED.accepted_applications,
    last_view_at          = EXCLUDED.last_view_at,
    last_application_at   = EXCLUDED.last_application_at,
    last_updated          = EXCLUDED.last_updated
RETURNING ` + jobStatsColumns

const upsertCompanyStats = `INSERT INTO company_stats (` + companyStatsColumns + `)` + companyStatsSelect + `
WHERE c.id = $2::uuid
ON CONFLICT (company_id) DO UPDATE SET
    jobs_count          = EXCLUDED.jobs_count,
    active_jobs_count   = EXCLUDED.active_jobs_count,
    total_views         = EXCLUDED.total_views,
    unique_viewers      = EXCLUDED.unique_viewers,
    total_applications  = EXCLUDED.total_applications,
    follower_count      = EXCLUDED.follower_count,
    last_view_at        = EXCLUDED.last_view_at,
    last_application_at = EXCLUDED.last_application_at,
    last_updated        = EXCLUDED.last_updated
RETURNING ` + companyStatsColumns

const deleteJobStats = `DELETE FROM job_stats WHERE job_id = $1`

const deleteCompanyStats = `DELETE FROM company_stats WHERE company_id = $1`

const selectJobStats = `SELECT ` + jobStatsColumns + ` FROM job_stats WHERE job_id = $1`

const selectCompanyStats = `SELECT ` + companyStatsColumns + ` FROM company_stats WHERE company_id = $1`
