/*Package qc computes per-sample quality-control statistics over FASTQ
  reads in a single streaming pass.

  A Runner scans one or more FASTQ streams and hands every read, in file
  order, to each registered Statistic before scanning the next read.
  Calling Runner.Process once per input file pools all of the files into
  the same accumulators; this is how the two mates of a paired-end sample
  are combined into one report.

  Once the input is consumed, Runner.Finalize moves the statistics out of
  the runner and Assemble merges their reports into one Summary, keyed by
  statistic name:

    average_read_quality               mean of the per-read mean qualities
    average_base_quality_per_position  mean quality at each read position
    base_composition_per_position      fraction of A, C, G, T and other bases at each position
    read_length                        read count and min/max/mean read length
    duplicate_reads                    estimated fraction of duplicated sequences

  Qualities are Phred+33: the numeric quality of a code is its byte value
  minus 33.
*/
package qc
